package demonchart

// ChartPoint is one bar in the rendered difficulty chart.
type ChartPoint struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartDetail is the details-panel payload for one selected point.
// The renderer addresses details by the same index it reports on selection.
type ChartDetail struct {
	Name             string  `json:"name"`
	Author           string  `json:"author,omitempty"`
	Value            float64 `json:"value"`
	PrimaryLinkURL   string  `json:"primaryLinkUrl,omitempty"`
	SecondaryLinkURL string  `json:"secondaryLinkUrl,omitempty"`
	CommentaryHTML   string  `json:"commentaryHtml"`
}

// ChartData is the payload handed to the chart renderer.
// Points appear in record order; the renderer reveals them progressively
// and raises selection callbacks carrying a point index.
type ChartData struct {
	Points  []ChartPoint  `json:"points"`
	Details []ChartDetail `json:"details"`
}

// BuildChartData converts records into the renderer payload.
// The record order is preserved.
func BuildChartData(records []*Record) *ChartData {
	data := &ChartData{
		Points:  make([]ChartPoint, 0, len(records)),
		Details: make([]ChartDetail, 0, len(records)),
	}
	for i, rec := range records {
		data.Points = append(data.Points, ChartPoint{
			Index: i,
			Label: rec.Name,
			Value: rec.Value,
		})
		data.Details = append(data.Details, ChartDetail{
			Name:             rec.Name,
			Author:           rec.Author,
			Value:            rec.Value,
			PrimaryLinkURL:   rec.PrimaryLinkURL,
			SecondaryLinkURL: rec.SecondaryLinkURL,
			CommentaryHTML:   rec.CommentaryHTML,
		})
	}
	return data
}

// Reveal returns a copy of d limited to the first n points, used for
// progressive reveal navigation. n outside [0, len] returns all points.
func (d *ChartData) Reveal(n int) *ChartData {
	if n < 0 || n > len(d.Points) {
		n = len(d.Points)
	}
	return &ChartData{
		Points:  d.Points[:n:n],
		Details: d.Details[:n:n],
	}
}
