package ui

// Host is the LED controller the menu acts on. Calls are fire-and-forget.
type Host interface {
	TogglePower()
	NotifyStateChanged()
	AdvanceEffect()
	NotifyColorChanged()
	Brightness() uint8
	SetBrightness(v uint8)
	AssignRandomColor()
	RequestReboot()
	RequestFactoryReset()
}

// WifiMode is the connectivity reported by the host.
type WifiMode uint8

const (
	WifiNone WifiMode = iota
	WifiClient
	WifiAP
)

func (m WifiMode) String() string {
	switch m {
	case WifiClient:
		return "CLIENT"
	case WifiAP:
		return "AP"
	}
	return "NONE"
}

// Status is the host state polled every tick.
type Status interface {
	// Updating is true while the LED strip is being written.
	Updating() bool
	// StateChanged reports and clears a pending LED state change.
	StateChanged() bool
	WifiMode() WifiMode
}

// Brightness bounds used by the menu.
const (
	BrightnessStep int   = 8
	BrightnessMin  uint8 = 1
	BrightnessMax  uint8 = 255
)

// AdjustBrightness applies delta to cur and snaps the result into [min, max].
// It reports false when cur already sits on the bound delta points at.
func AdjustBrightness(cur uint8, delta int, min, max uint8) (uint8, bool) {
	if delta > 0 && cur >= max {
		return cur, false
	}
	if delta < 0 && cur <= min {
		return cur, false
	}
	v := int(cur) + delta
	if v < int(min) {
		v = int(min)
	}
	if v > int(max) {
		v = int(max)
	}
	return uint8(v), uint8(v) != cur
}

// menuAction runs one menu item. It returns true when the item already left
// the menu and the generic exit must be skipped.
type menuAction func(c *Controller) (done bool)

var menuActions = [...]menuAction{
	MenuPower:          (*Controller).menuPower,
	MenuColor:          (*Controller).menuColor,
	MenuAP:             (*Controller).menuAccessPoint,
	MenuReboot:         (*Controller).menuReboot,
	MenuFactoryReset:   (*Controller).menuFactoryReset,
	MenuNextEffect:     (*Controller).menuNextEffect,
	MenuBrightnessUp:   (*Controller).menuBrightnessUp,
	MenuBrightnessDown: (*Controller).menuBrightnessDown,
	MenuScreensaver:    (*Controller).menuScreensaver,
	MenuExit:           (*Controller).menuExit,
}

var _ [0]struct{} = [len(menuActions) - int(menuCount)]struct{}{}

// Execute runs the selected menu item. It does nothing outside the menu.
func (c *Controller) Execute() {
	item, ok := c.nav.Active().(MenuItem)
	if !ok || item >= menuCount {
		return
	}
	c.log.Info("menu action", "item", item.String())
	if menuActions[item](c) {
		return
	}
	c.closeMenu("action")
}

func (c *Controller) menuPower() bool {
	c.host.TogglePower()
	c.host.NotifyStateChanged()
	return false
}

func (c *Controller) menuColor() bool {
	c.host.AssignRandomColor()
	c.host.NotifyColorChanged()
	return false
}

func (c *Controller) menuNextEffect() bool {
	c.host.AdvanceEffect()
	c.host.NotifyColorChanged()
	return false
}

func (c *Controller) menuBrightnessUp() bool {
	c.stepBrightness(BrightnessStep)
	return false
}

func (c *Controller) menuBrightnessDown() bool {
	c.stepBrightness(-BrightnessStep)
	return false
}

func (c *Controller) stepBrightness(delta int) {
	v, changed := AdjustBrightness(c.host.Brightness(), delta, BrightnessMin, BrightnessMax)
	if !changed {
		return
	}
	c.host.SetBrightness(v)
	c.host.NotifyStateChanged()
}

func (c *Controller) menuReboot() bool {
	c.nav.ExitMenu()
	c.power.Disable()
	c.host.RequestReboot()
	return true
}

// Access point mode is reached by wiping the stored settings; the host
// restarts without credentials and brings up its own network.
func (c *Controller) menuAccessPoint() bool {
	c.nav.ExitMenu()
	c.power.Disable()
	c.host.RequestFactoryReset()
	return true
}

func (c *Controller) menuFactoryReset() bool {
	return c.menuAccessPoint()
}

func (c *Controller) menuScreensaver() bool {
	c.nav.ExitMenu()
	c.contrast.Idle()
	c.enterScreensaver("menu")
	return true
}

func (c *Controller) menuExit() bool { return false }
