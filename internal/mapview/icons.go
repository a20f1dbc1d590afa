package mapview

import "fmt"

// stopIcon renders the pin marker: blue for ordinary stops, red and
// enlarged for the selected stop. Anchored at the pin tip.
func stopIcon(selected bool) Icon {
	size, height := 24, 31
	fill := "#3B82F6"
	pathD := "M12 0C5.373 0 0 5.373 0 12c0 9 12 19 12 19s12-10 12-19c0-6.627-5.373-12-12-12z"
	circle := `cx="12" cy="12" r="5"`
	viewBox := "0 0 24 31"
	if selected {
		size, height = 36, 46
		fill = "#EF4444"
		pathD = "M18 0C8.059 0 0 8.059 0 18c0 13.5 18 28 18 28s18-14.5 18-28c0-9.941-8.059-18-18-18z"
		circle = `cx="18" cy="18" r="7"`
		viewBox = "0 0 36 46"
	}

	content := fmt.Sprintf(
		`<svg width="%d" height="%d" viewBox="%s" fill="none" xmlns="http://www.w3.org/2000/svg"><path d="%s" fill="%s"/><circle %s fill="white"/></svg>`,
		size, height, viewBox, pathD, fill, circle)

	return Icon{Content: content, AnchorX: size / 2, AnchorY: height}
}

// currentLocationIcon renders the blue dot with a pulsing halo, anchored at
// its center.
func currentLocationIcon() Icon {
	content := `<div class="current-location-marker"><div class="pulse"></div><div class="dot"></div></div>`
	return Icon{Content: content, AnchorX: 8, AnchorY: 8}
}
