package statsapi

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingIntRegex = regexp.MustCompile(`^\s*(\d+)`)
var nonDigitRegex = regexp.MustCompile(`\D`)

// InningsToOuts converts innings-pitched notation to a total out count.
// The fractional digit counts partial-inning outs (0, 1 or 2), not
// tenths: "5.2" is five innings and two outs. Empty or malformed input
// maps to zero.
func InningsToOuts(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	whole := text
	frac := 0
	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		whole = text[:dot]
		parsed, err := strconv.Atoi(text[dot+1:])
		if err != nil || parsed < 0 || parsed > 2 {
			return 0
		}
		frac = parsed
	}

	innings, err := strconv.Atoi(whole)
	if err != nil || innings < 0 {
		return 0
	}
	return innings*3 + frac
}

// HasDecision reports whether a pitcher's decision note awards the
// requested letter. Notes look like "(W, 1-0)", "(S, 2)" or "(H, 5)";
// only the first letter inside the parentheses counts.
func HasDecision(note, letter string) bool {
	note = strings.TrimSpace(note)
	if note == "" || letter == "" {
		return false
	}

	open := strings.IndexByte(note, '(')
	if open < 0 || open+1 >= len(note) {
		return false
	}
	body := note[open+1:]
	if closing := strings.IndexByte(body, ')'); closing >= 0 {
		body = body[:closing]
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return false
	}

	first := body
	if sep := strings.IndexAny(body, ", "); sep >= 0 {
		first = body[:sep]
	}
	return strings.EqualFold(first, letter)
}

// BattingOrderSlot decodes the three-digit batting order code into a
// lineup slot (1..9): the slot is the hundreds digit, the remainder
// counts substitutions within the slot. Dotted codes ("601.1") decode
// the same way. Absent or malformed codes yield nil.
func BattingOrderSlot(code string) *int {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	if dot := strings.IndexByte(code, '.'); dot >= 0 {
		code = code[:dot]
	}

	value, err := strconv.Atoi(code)
	if err != nil || value < 0 {
		return nil
	}
	slot := value / 100
	return &slot
}

// ParseERA parses an ERA string, returning nil for the upstream
// placeholder values ("" and "-.--") and for anything unparseable.
func ParseERA(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" || text == "-.--" {
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &value
}

// GameMeta is the handful of game-level context fields mined from the
// box info label/value list. Every field is optional.
type GameMeta struct {
	WeatherTempF *int
	WindSpeedMPH *int
	Attendance   *int
	FirstPitch   string
}

// ExtractGameMeta scans the info list for the labels the pipeline cares
// about. Weather and wind keep only the leading integer ("72 degrees,
// Sunny." and "10 mph, Out To CF."); attendance drops every non-digit
// before parsing. Missing labels leave the field unset.
func ExtractGameMeta(entries []LabelValue) GameMeta {
	var meta GameMeta
	for _, entry := range entries {
		value := strings.TrimSpace(entry.Value)
		switch strings.TrimSpace(entry.Label) {
		case "Weather":
			meta.WeatherTempF = leadingInt(value)
		case "Wind":
			meta.WindSpeedMPH = leadingInt(value)
		case "Att":
			digits := nonDigitRegex.ReplaceAllString(value, "")
			if parsed, err := strconv.Atoi(digits); err == nil {
				meta.Attendance = &parsed
			}
		case "First pitch":
			meta.FirstPitch = strings.TrimSuffix(value, ".")
		}
	}
	return meta
}

func leadingInt(value string) *int {
	match := leadingIntRegex.FindStringSubmatch(value)
	if match == nil {
		return nil
	}
	parsed, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &parsed
}
