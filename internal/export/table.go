package export

import (
	"fmt"
	"strings"

	"github.com/Mavwarf/moonicon/internal/icon"
	"github.com/Mavwarf/moonicon/internal/tmpl"
)

// Set names, in table order.
const (
	SetAppIOS              = "app-ios"
	SetAppAndroid          = "app-android"
	SetNotificationAndroid = "notification-android"
	SetNotificationIOS     = "notification-ios"
)

const (
	appIOSDir       = "ios/Runner/Assets.xcassets/AppIcon.appiconset"
	androidResDir   = "android/app/src/main/res"
	notifIOSDir     = "ios/Runner/Assets.xcassets/NotificationIcon.imageset"
	launcherPattern = androidResDir + "/mipmap-{density}/ic_launcher.png"
	notifPattern    = androidResDir + "/drawable-{density}/ic_notification.png"
	notifIOSPattern = notifIOSDir + "/notification-icon-{size}@{scale}x.png"
)

// Entry is one PNG asset: the icon edge in pixels and the output path
// relative to the project root, always with forward slashes.
type Entry struct {
	Size  int
	Path  string
	Scale int // asset-catalog scale, 0 when not applicable
}

// Set is a named group of assets rendered from one icon kind. Manifest is
// non-nil for asset catalogs that need a Contents.json.
type Set struct {
	Name     string
	Kind     icon.Kind
	Entries  []Entry
	Manifest *Manifest
}

type densitySize struct {
	density string
	size    int
}

// Sets returns the export tables in their fixed order. Each call builds a
// fresh copy, so callers may modify the result.
func Sets() []Set {
	return []Set{
		appIOSSet(),
		densitySet(SetAppAndroid, icon.KindApp, launcherPattern, []densitySize{
			{"xxxhdpi", 192},
			{"xxhdpi", 144},
			{"xhdpi", 96},
			{"hdpi", 72},
			{"mdpi", 48},
		}),
		densitySet(SetNotificationAndroid, icon.KindNotification, notifPattern, []densitySize{
			{"mdpi", 24},
			{"hdpi", 36},
			{"xhdpi", 48},
			{"xxhdpi", 72},
			{"xxxhdpi", 96},
		}),
		notificationIOSSet(),
	}
}

func appIOSSet() Set {
	files := []struct {
		size int
		name string
	}{
		{1024, "Icon-App-1024x1024@1x.png"},
		{180, "Icon-App-60x60@3x.png"},
		{120, "Icon-App-60x60@2x.png"},
		{120, "Icon-App-40x40@3x.png"},
		{76, "Icon-App-76x76@1x.png"},
		{152, "Icon-App-76x76@2x.png"},
		{167, "Icon-App-83.5x83.5@2x.png"},
		{80, "Icon-App-40x40@2x.png"},
		{60, "Icon-App-60x60@1x.png"},
		{40, "Icon-App-40x40@1x.png"},
		{29, "Icon-App-29x29@1x.png"},
		{58, "Icon-App-29x29@2x.png"},
		{87, "Icon-App-29x29@3x.png"},
		{20, "Icon-App-20x20@1x.png"},
		{40, "Icon-App-20x20@2x.png"},
		{60, "Icon-App-20x20@3x.png"},
	}
	s := Set{Name: SetAppIOS, Kind: icon.KindApp}
	for _, f := range files {
		s.Entries = append(s.Entries, Entry{Size: f.size, Path: appIOSDir + "/" + f.name})
	}
	return s
}

func densitySet(name string, kind icon.Kind, pattern string, rows []densitySize) Set {
	s := Set{Name: name, Kind: kind}
	for _, r := range rows {
		s.Entries = append(s.Entries, Entry{
			Size: r.size,
			Path: tmpl.Expand(pattern, tmpl.Vars{Density: r.density, Size: r.size}),
		})
	}
	return s
}

func notificationIOSSet() Set {
	s := Set{Name: SetNotificationIOS, Kind: icon.KindNotification}
	m := &Manifest{Path: notifIOSDir + "/Contents.json"}
	for i, size := range []int{20, 40, 60} {
		scale := i + 1
		p := tmpl.Expand(notifIOSPattern, tmpl.Vars{Size: size, Scale: scale})
		s.Entries = append(s.Entries, Entry{Size: size, Path: p, Scale: scale})
		m.Images = append(m.Images, ManifestImage{
			Filename: p[strings.LastIndex(p, "/")+1:],
			Idiom:    "universal",
			Scale:    fmt.Sprintf("%dx", scale),
		})
	}
	s.Manifest = m
	return s
}

// Names returns the set names in table order.
func Names() []string {
	sets := Sets()
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return names
}

// Select returns the named sets in table order, regardless of the order of
// names. Duplicate names are ignored. An empty or nil names selects every
// set.
func Select(names []string) ([]Set, error) {
	all := Sets()
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if !IsSet(n) {
			return nil, fmt.Errorf("unknown set %q (valid: %s)", n, strings.Join(Names(), ", "))
		}
		want[n] = true
	}
	var out []Set
	for _, s := range all {
		if want[s.Name] {
			out = append(out, s)
		}
	}
	return out, nil
}

// IsSet reports whether name is a known set.
func IsSet(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}
