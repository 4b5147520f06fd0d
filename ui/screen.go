package ui

// Screen is what the display shows. It is one of Info, MenuItem,
// ScreensaverVariant or Sentinel; the set is closed.
type Screen interface {
	String() string
	screen()
}

// Info screens are browsed with the action button outside the menu.
type Info uint8

const (
	InfoWiFi Info = iota
	InfoLED
	InfoFX
	InfoTech
	InfoTimeAndDate
	InfoDisplay
	InfoAbout

	infoCount
)

var infoNames = [...]string{
	InfoWiFi:        "WIFI",
	InfoLED:         "LED",
	InfoFX:          "FX",
	InfoTech:        "TECH_INFO",
	InfoTimeAndDate: "TIME_AND_DATE",
	InfoDisplay:     "DISPLAY_INFO",
	InfoAbout:       "ABOUT",
}

var _ [0]struct{} = [len(infoNames) - int(infoCount)]struct{}{}

func (Info) screen() {}

func (s Info) String() string {
	if s >= infoCount {
		return "INFO?"
	}
	return infoNames[s]
}

func (s Info) next() Info {
	if s >= InfoAbout {
		return InfoWiFi
	}
	return s + 1
}

// MenuItem screens exist only while the menu is open.
type MenuItem uint8

const (
	MenuPower MenuItem = iota
	MenuColor
	MenuAP
	MenuReboot
	MenuFactoryReset
	MenuNextEffect
	MenuBrightnessUp
	MenuBrightnessDown
	MenuScreensaver
	MenuExit

	menuCount
)

var menuNames = [...]string{
	MenuPower:          "POWER",
	MenuColor:          "COLOR",
	MenuAP:             "AP",
	MenuReboot:         "REBOOT",
	MenuFactoryReset:   "FACTORY_RESET",
	MenuNextEffect:     "NEXT_EFFECT",
	MenuBrightnessUp:   "BRI_PLUS",
	MenuBrightnessDown: "BRI_MINUS",
	MenuScreensaver:    "SCREENSAVER",
	MenuExit:           "EXIT",
}

var _ [0]struct{} = [len(menuNames) - int(menuCount)]struct{}{}

func (MenuItem) screen() {}

func (m MenuItem) String() string {
	if m >= menuCount {
		return "MENU?"
	}
	return menuNames[m]
}

func (m MenuItem) next() MenuItem {
	if m >= MenuExit {
		return MenuPower
	}
	return m + 1
}

// ScreensaverVariant selects the idle animation. The numeric value is the
// persisted "screensaver" setting.
type ScreensaverVariant uint8

const (
	SaverNightSky ScreensaverVariant = iota
	SaverClock
	SaverEmpty

	saverCount
)

var saverNames = [...]string{
	SaverNightSky: "NIGHTSKY",
	SaverClock:    "CLOCK",
	SaverEmpty:    "EMPTY",
}

var _ [0]struct{} = [len(saverNames) - int(saverCount)]struct{}{}

func (ScreensaverVariant) screen() {}

func (v ScreensaverVariant) String() string {
	if v >= saverCount {
		return "SCREENSAVER?"
	}
	return saverNames[v]
}

// ParseScreensaver maps a persisted setting to a variant.
func ParseScreensaver(n int) (ScreensaverVariant, bool) {
	if n < 0 || n >= int(saverCount) {
		return 0, false
	}
	return ScreensaverVariant(n), true
}

// Sentinel marks the boot splash and the "nothing rendered yet" state.
type Sentinel uint8

const (
	Splash Sentinel = iota
	Nothing
)

func (Sentinel) screen() {}

func (s Sentinel) String() string {
	switch s {
	case Splash:
		return "SPLASH"
	case Nothing:
		return "NOTHING"
	}
	return "SENTINEL?"
}
