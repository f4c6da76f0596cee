package utils

import (
	"time"
)

// synodic month in seconds
const lunarPeriodSeconds = 2551443

// reference new moon: Jan 7 1970, 20:35 UTC
var newMoonEpoch = time.Date(1970, time.January, 7, 20, 35, 0, 0, time.UTC)

// MoonPhase describes where we are in the lunar cycle
type MoonPhase struct {
	Phase float64 `json:"phase"` // 0 to 1, 0 = new moon
	Name  string  `json:"name"`
	Icon  string  `json:"icon"`
}

// CurrentMoonPhase computes the moon phase for the given moment
func CurrentMoonPhase(date time.Time) MoonPhase {
	elapsed := date.Unix() - newMoonEpoch.Unix()
	seconds := elapsed % lunarPeriodSeconds
	if seconds < 0 {
		seconds += lunarPeriodSeconds
	}
	phase := float64(seconds) / float64(lunarPeriodSeconds)

	var name, icon string
	switch {
	case phase < 0.0625 || phase >= 0.9375:
		name, icon = "New Moon", "🌑"
	case phase < 0.1875:
		name, icon = "Waxing Crescent", "🌒"
	case phase < 0.3125:
		name, icon = "First Quarter", "🌓"
	case phase < 0.4375:
		name, icon = "Waxing Gibbous", "🌔"
	case phase < 0.5625:
		name, icon = "Full Moon", "🌕"
	case phase < 0.6875:
		name, icon = "Waning Gibbous", "🌖"
	case phase < 0.8125:
		name, icon = "Last Quarter", "🌗"
	default:
		name, icon = "Waning Crescent", "🌘"
	}

	return MoonPhase{Phase: phase, Name: name, Icon: icon}
}
