package runtime

// FacetTag names an optional capability a widget can expose to its
// descendants and siblings.
type FacetTag int

const (
	// FacetWindow is implemented by WindowFacet.
	FacetWindow FacetTag = iota
	// FacetDefaultWidgetManager is implemented by DefaultWidgetManager.
	FacetDefaultWidgetManager
)

func (t FacetTag) String() string {
	switch t {
	case FacetWindow:
		return "window"
	case FacetDefaultWidgetManager:
		return "default_widget_manager"
	default:
		return "unknown"
	}
}

// WindowFacet lets a window container place and size windows.
type WindowFacet interface {
	// IsExtendViewport reports whether the container must grow its minimum
	// size so the window stays reachable by viewport scrolling.
	IsExtendViewport() bool
	// IsManuallyPlaced reports whether the window keeps its own geometry.
	IsManuallyPlaced() bool
	// AutoPlace positions w inside available.
	AutoPlace(available Size, w *Widget)
}

// DefaultWidgetManager tracks the widget activated by Enter when focus sits
// on something that does not accept Enter itself.
type DefaultWidgetManager interface {
	DefaultWidget() *Widget
	SetDefaultWidget(w *Widget)
	IsDefaultWidgetActive() bool
}

// WindowFacetOf returns w's window facet, or nil.
func WindowFacetOf(w *Widget) WindowFacet {
	f, _ := w.Facet(FacetWindow).(WindowFacet)
	return f
}

// FindDefaultWidgetManager returns the nearest default widget manager.
func FindDefaultWidgetManager(w *Widget) DefaultWidgetManager {
	f, _ := w.FindFacet(FacetDefaultWidgetManager).(DefaultWidgetManager)
	return f
}
