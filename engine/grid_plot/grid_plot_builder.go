package grid_plot

// PlotBuilderOption is a functional option applied by NewPlot.
type PlotBuilderOption func(*plotConfig)

// WithTitle replaces the default "grid <projection>" title.
func WithTitle(title string) PlotBuilderOption {
	return func(c *plotConfig) {
		c.title = title
	}
}

// WithHideAxes removes the axes, leaving only the wireframe.
func WithHideAxes(hide bool) PlotBuilderOption {
	return func(c *plotConfig) {
		c.hideAxes = hide
	}
}

// WithPadding sets the margin around the wireframe as a fraction of its larger projected extent.
// Negative values are treated as zero.
func WithPadding(fraction float64) PlotBuilderOption {
	return func(c *plotConfig) {
		c.padding = max(fraction, 0)
	}
}

// WithLineScale multiplies every command's width, in points. Useful for large output images.
func WithLineScale(scale float64) PlotBuilderOption {
	return func(c *plotConfig) {
		if scale > 0 {
			c.lineScale = scale
		}
	}
}
