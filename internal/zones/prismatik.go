package zones

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"regexp"
	"strconv"
	"strings"
)

// Prismatik profiles are ini-style files. Each LED is a section like
//
//	[LED_1]
//	IsEnabled=true
//	Position=@Point(1370 731)
//	Size=@Size(148 173)
//	CoefRed=1
//
// Sections other than [LED_*] (device, grab, mood lamp) carry settings
// this program does not use and are skipped. Color coefficients are
// accepted but ignored; color correction happens on the strip side if
// at all. Indices in the file are 1-based and become 0-based zones.
var (
	ledSectionRe = regexp.MustCompile(`^\[LED_(\d+)\]$`)
	sectionRe    = regexp.MustCompile(`^\[[^\]]+\]$`)
	enabledRe    = regexp.MustCompile(`^IsEnabled\s*=\s*(true|false)$`)
	positionRe   = regexp.MustCompile(`^Position\s*=\s*@Point\((-?\d+)\s+(-?\d+)\)$`)
	sizeRe       = regexp.MustCompile(`^Size\s*=\s*@Size\((\d+)\s+(\d+)\)$`)
)

type ledSection struct {
	index   int
	enabled bool
	pos     image.Point
	size    image.Point
	hasPos  bool
	hasSize bool
}

// ParsePrismatik extracts the LED zones out of a Prismatik profile.
func ParsePrismatik(data []byte) ([]Zone, error) {
	var (
		zs  []Zone
		cur *ledSection
		err error
	)
	flush := func() {
		if cur == nil || err != nil {
			return
		}
		if !cur.hasPos || !cur.hasSize {
			err = fmt.Errorf("LED_%d is missing Position or Size", cur.index+1)
			return
		}
		zs = append(zs, Zone{
			Index:   cur.index,
			Enabled: cur.enabled,
			Rect:    image.Rect(cur.pos.X, cur.pos.Y, cur.pos.X+cur.size.X, cur.pos.Y+cur.size.Y),
		})
		cur = nil
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if m := ledSectionRe.FindStringSubmatch(line); m != nil {
			flush()
			n, convErr := strconv.Atoi(m[1])
			if convErr != nil || n < 1 {
				return nil, fmt.Errorf("bad LED section %q", line)
			}
			cur = &ledSection{index: n - 1, enabled: true}
			continue
		}
		if sectionRe.MatchString(line) {
			flush()
			continue
		}
		if cur == nil {
			continue
		}
		if m := enabledRe.FindStringSubmatch(line); m != nil {
			cur.enabled = m[1] == "true"
			continue
		}
		if m := positionRe.FindStringSubmatch(line); m != nil {
			x, _ := strconv.Atoi(m[1])
			y, _ := strconv.Atoi(m[2])
			cur.pos = image.Pt(x, y)
			cur.hasPos = true
			continue
		}
		if m := sizeRe.FindStringSubmatch(line); m != nil {
			w, _ := strconv.Atoi(m[1])
			h, _ := strconv.Atoi(m[2])
			cur.size = image.Pt(w, h)
			cur.hasSize = true
			continue
		}
		// Coefficients and any other LED keys are ignored.
	}
	flush()
	if err != nil {
		return nil, err
	}
	if scanErr := sc.Err(); scanErr != nil {
		return nil, scanErr
	}
	return zs, nil
}
