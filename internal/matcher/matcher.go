package matcher

import (
	"sort"
	"strings"

	"github.com/MrSnakeDoc/arbcheck/internal/models"
	"github.com/MrSnakeDoc/arbcheck/internal/utils"
)

type Outcome int

const (
	Unsupported Outcome = iota
	UnknownVersion
	Safe
	Fused
)

func (o Outcome) String() string {
	switch o {
	case Unsupported:
		return "unsupported"
	case UnknownVersion:
		return "unknown"
	case Safe:
		return "safe"
	case Fused:
		return "fused"
	default:
		return "invalid"
	}
}

// FutureWarning is raised when a safe build shares a device with a higher-ARB build.
type FutureWarning struct {
	MaxARB int `json:"max_arb"`
}

type Result struct {
	Outcome    Outcome               `json:"-"`
	Status     string                `json:"status"`
	Model      string                `json:"model"`
	Build      string                `json:"build"`
	Device     *models.DeviceRecord  `json:"-"`
	MatchedKey string                `json:"matched_key,omitempty"`
	Record     *models.VersionRecord `json:"record,omitempty"`
	Exact      bool                  `json:"exact"`
	MaxARB     int                   `json:"max_arb"`
	Warning    *FutureWarning        `json:"warning,omitempty"`
}

// Supported is false only when the model is missing from the database.
func (r Result) Supported() bool {
	return r.Outcome != Unsupported
}

// ARB is the matched record's index, 0 when nothing matched.
func (r Result) ARB() int {
	if r.Record == nil {
		return 0
	}
	return r.Record.ARB
}

// Match resolves model and build against db.
// Exact key first, then a case-insensitive containment match in either
// direction; among several candidates the longest key wins, ties broken
// lexicographically.
func Match(db models.Database, model, build string) Result {
	res := Result{Model: model, Build: build}

	dev, ok := db[model]
	if !ok {
		res.Outcome = Unsupported
		res.Status = res.Outcome.String()
		return res
	}
	res.Device = &dev
	res.MaxARB = MaxARB(dev)

	key, exact, found := lookup(dev, build)
	if !found {
		res.Outcome = UnknownVersion
		res.Status = res.Outcome.String()
		return res
	}

	rec := dev.Versions[key]
	res.MatchedKey = key
	res.Record = &rec
	res.Exact = exact

	if rec.Fused() {
		res.Outcome = Fused
	} else {
		res.Outcome = Safe
		if res.MaxARB > rec.ARB {
			res.Warning = &FutureWarning{MaxARB: res.MaxARB}
		}
	}
	res.Status = res.Outcome.String()
	return res
}

func lookup(dev models.DeviceRecord, build string) (key string, exact, found bool) {
	if _, ok := dev.Versions[build]; ok {
		return build, true, true
	}
	if build == "" {
		return "", false, false
	}

	needle := strings.ToLower(build)
	candidates := utils.Filter(utils.Keys(dev.Versions), func(k string) bool {
		if k == "" {
			return false
		}
		lk := strings.ToLower(k)
		return strings.Contains(lk, needle) || strings.Contains(needle, lk)
	})
	if len(candidates) == 0 {
		return "", false, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	return candidates[0], false, true
}

// MaxARB returns the highest index across every version of dev.
func MaxARB(dev models.DeviceRecord) int {
	highest := 0
	for _, v := range dev.Versions {
		if v.ARB > highest {
			highest = v.ARB
		}
	}
	return highest
}

// NeedsAlert reports whether a background notification is due and for which index.
// Unknown builds count as ARB 0.
func NeedsAlert(r Result) (int, bool) {
	if !r.Supported() {
		return 0, false
	}
	if r.MaxARB > r.ARB() {
		return r.MaxARB, true
	}
	return 0, false
}

type VersionEntry struct {
	Key    string
	Record models.VersionRecord
}

// SortedVersions orders a device's history by ARB descending, then key.
func SortedVersions(dev models.DeviceRecord) []VersionEntry {
	entries := utils.Map(utils.Keys(dev.Versions), func(k string) VersionEntry {
		return VersionEntry{Key: k, Record: dev.Versions[k]}
	})
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Record.ARB != entries[j].Record.ARB {
			return entries[i].Record.ARB > entries[j].Record.ARB
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
