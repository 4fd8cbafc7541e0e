package domain

import (
	"fmt"
	"sort"
)

type App string

const (
	AppTikTok    App = "TikTok"
	AppInstagram App = "Instagram"
	AppYouTube   App = "YouTube"
	AppFacebook  App = "Facebook"
	AppTwitter   App = "Twitter"
	AppSnapchat  App = "Snapchat"
	AppNetflix   App = "Netflix"
	AppWhatsApp  App = "WhatsApp"
	AppReddit    App = "Reddit"
	AppDiscord   App = "Discord"
)

// PopularApps is the tracking list offered to users, in display order.
var PopularApps = []App{
	AppTikTok, AppInstagram, AppYouTube, AppFacebook, AppTwitter,
	AppNetflix, AppWhatsApp, AppSnapchat, AppReddit, AppDiscord,
}

type ActivityType string

const (
	ActivityStudy         ActivityType = "study"
	ActivityExercise      ActivityType = "exercise"
	ActivityWork          ActivityType = "work"
	ActivityCreative      ActivityType = "creative"
	ActivityReading       ActivityType = "reading"
	ActivityMeditation    ActivityType = "meditation"
	ActivitySkillBuilding ActivityType = "skill_building"
)

var ActivityTypes = []ActivityType{
	ActivityStudy, ActivityExercise, ActivityWork, ActivityCreative,
	ActivityReading, ActivityMeditation, ActivitySkillBuilding,
}

func (a ActivityType) Validate() error {
	for _, known := range ActivityTypes {
		if a == known {
			return nil
		}
	}
	return fmt.Errorf("unsupported activity type %q", string(a))
}

// RateTable is a closed key→rate mapping with an explicit fallback for unknown keys.
type RateTable[K ~string] struct {
	rates    map[K]float64
	fallback float64
}

func NewRateTable[K ~string](rates map[K]float64, fallback float64) RateTable[K] {
	copied := make(map[K]float64, len(rates))
	for k, v := range rates {
		copied[k] = v
	}
	return RateTable[K]{rates: copied, fallback: fallback}
}

// Lookup reports the configured rate and whether key is known.
func (t RateTable[K]) Lookup(key K) (float64, bool) {
	v, ok := t.rates[key]
	return v, ok
}

// Rate returns the configured rate, or the fallback for unknown keys.
func (t RateTable[K]) Rate(key K) float64 {
	if v, ok := t.rates[key]; ok {
		return v
	}
	return t.fallback
}

func (t RateTable[K]) Fallback() float64 { return t.fallback }

func (t RateTable[K]) Keys() []K {
	keys := make([]K, 0, len(t.rates))
	for k := range t.rates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func DefaultProfitWeights() RateTable[App] {
	return NewRateTable(map[App]float64{
		AppTikTok:    1.8,
		AppInstagram: 1.6,
		AppYouTube:   1.4,
		AppFacebook:  1.5,
		AppTwitter:   1.3,
		AppSnapchat:  1.4,
		AppNetflix:   0.8,
		AppWhatsApp:  0.3,
		AppReddit:    1.2,
		AppDiscord:   0.5,
	}, 1.0)
}

// DefaultCorporateProfitRates estimates platform advertising revenue per hour of use.
func DefaultCorporateProfitRates() RateTable[App] {
	return NewRateTable(map[App]float64{
		AppTikTok:    145,
		AppInstagram: 130,
		AppYouTube:   120,
		AppFacebook:  125,
		AppTwitter:   90,
		AppSnapchat:  85,
		AppNetflix:   40,
		AppWhatsApp:  15,
		AppReddit:    75,
		AppDiscord:   25,
	}, 50)
}

func DefaultFocusPointRates() RateTable[ActivityType] {
	return NewRateTable(map[ActivityType]float64{
		ActivityStudy:         100,
		ActivityExercise:      80,
		ActivityWork:          90,
		ActivityCreative:      85,
		ActivityReading:       70,
		ActivityMeditation:    60,
		ActivitySkillBuilding: 95,
	}, 50)
}
