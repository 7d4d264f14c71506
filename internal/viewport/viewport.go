package viewport

// DefaultBreakpoint is the terminal width, in columns, at or below which the
// narrow layout is used.
const DefaultBreakpoint = 100

// Layout holds the size constants derived from the terminal width.
type Layout struct {
	Width     int
	IsMobile  bool
	PageSize  int
	HalfCount int
	ChunkSize int
}

var (
	narrow = Layout{IsMobile: true, PageSize: 12, HalfCount: 6, ChunkSize: 1}
	wide   = Layout{IsMobile: false, PageSize: 24, HalfCount: 12, ChunkSize: 4}
)

// Adapter maps a width to a Layout.
type Adapter struct {
	Breakpoint int
}

// For returns the layout for width. An unknown width (zero or less) is
// treated as wide.
func (a Adapter) For(width int) Layout {
	bp := a.Breakpoint
	if bp <= 0 {
		bp = DefaultBreakpoint
	}
	l := wide
	if width > 0 && width <= bp {
		l = narrow
	}
	l.Width = width
	return l
}

// For uses the default breakpoint.
func For(width int) Layout {
	return Adapter{}.For(width)
}

// SameShape reports whether two layouts share every size constant, ignoring
// the exact width.
func (l Layout) SameShape(o Layout) bool {
	return l.IsMobile == o.IsMobile &&
		l.PageSize == o.PageSize &&
		l.HalfCount == o.HalfCount &&
		l.ChunkSize == o.ChunkSize
}
