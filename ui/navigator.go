package ui

// Navigator owns the active screen and the force-redraw flag. The menu is
// open exactly when the active screen is a MenuItem.
type Navigator struct {
	active   Screen
	rendered Screen
	redraw   bool
}

// NewNavigator starts on the WIFI screen with nothing rendered.
func NewNavigator() *Navigator {
	return &Navigator{active: InfoWiFi, rendered: Nothing}
}

func (n *Navigator) Active() Screen   { return n.active }
func (n *Navigator) Rendered() Screen { return n.rendered }
func (n *Navigator) RedrawPending() bool {
	return n.redraw
}

// InMenu reports whether the menu is open.
func (n *Navigator) InMenu() bool {
	_, ok := n.active.(MenuItem)
	return ok
}

// Advance steps to the next screen of the current category, wrapping at the
// end. Sentinels stay put.
func (n *Navigator) Advance() {
	switch s := n.active.(type) {
	case Info:
		n.active = s.next()
	case MenuItem:
		n.active = s.next()
	}
	n.redraw = true
}

// EnterMenu opens the menu on its first item.
func (n *Navigator) EnterMenu() {
	n.active = MenuPower
	n.redraw = true
}

// ExitMenu closes the menu and returns to WIFI.
func (n *Navigator) ExitMenu() {
	n.active = InfoWiFi
	n.redraw = true
}

// Show makes s active.
func (n *Navigator) Show(s Screen) {
	n.active = s
	n.redraw = true
}

// ForceRedraw makes the next due check succeed.
func (n *Navigator) ForceRedraw() { n.redraw = true }

func (n *Navigator) commit(s Screen) {
	n.rendered = s
	n.redraw = false
}
