// Package activity records recent questions and classifies them by subject.
package activity

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Type is the subject of an activity.
type Type string

const (
	TypeScan    Type = "scan"
	TypeMath    Type = "math"
	TypeHistory Type = "history"
	TypeCoding  Type = "coding"
	TypeGeneral Type = "general"
)

// ErrInvalidRecord is returned by Save for records that fail validation.
var ErrInvalidRecord = errors.New("invalid activity record")

// Record is one entry in the recent activity list.
type Record struct {
	ID            string
	Type          Type
	Icon          string
	Color         string
	Title         string
	Timestamp     time.Time
	HasResult     bool
	ResultPreview string
}

// Validate implements validation.Validatable.
func (r Record) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Type, validation.Required,
			validation.In(TypeScan, TypeMath, TypeHistory, TypeCoding, TypeGeneral)),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Timestamp, validation.Required),
	)
}

// Info describes how an activity type is shown.
type Info struct {
	Type  Type
	Icon  string
	Color string
	Title string
}

var (
	infoScan    = Info{TypeScan, "📸", "indigo", "Scanned exercise"}
	infoMath    = Info{TypeMath, "📐", "blue", "Math/Science"}
	infoHistory = Info{TypeHistory, "📜", "amber", "History/Social"}
	infoCoding  = Info{TypeCoding, "💻", "violet", "Programming"}
	infoGeneral = Info{TypeGeneral, "🎓", "slate", "General Q&A"}
)

// keyword lists, checked in order. Indonesian keywords are kept alongside
// the English ones.
var keywords = []struct {
	info  Info
	words []string
}{
	{infoMath, []string{"rumus", "hitung", "matematika", "formula", "calculate", "math", "equation"}},
	{infoHistory, []string{"sejarah", "siapa", "kapan", "history", "who was", "when did"}},
	{infoCoding, []string{"kode", "program", "error", "code", "function", "bug"}},
}

// Classify picks the activity type for a question. Any question with an
// image is a scan; otherwise the first matching keyword group wins.
func Classify(text string, hasImage bool) Info {
	if hasImage {
		return infoScan
	}
	lower := strings.ToLower(text)
	for _, group := range keywords {
		for _, w := range group.words {
			if strings.Contains(lower, w) {
				return group.info
			}
		}
	}
	return infoGeneral
}

// NewRecord starts a record for a question asked at now.
func NewRecord(text string, hasImage bool, now time.Time) Record {
	info := Classify(text, hasImage)
	return Record{
		ID:        uuid.NewString(),
		Type:      info.Type,
		Icon:      info.Icon,
		Color:     info.Color,
		Title:     info.Title,
		Timestamp: now,
	}
}

const previewLen = 50

// Preview shortens a reply to one line for the activity list.
func Preview(reply string) string {
	reply = strings.Join(strings.Fields(reply), " ")
	if reply == "" {
		return "Explanation finished"
	}
	if utf8.RuneCountInString(reply) <= previewLen {
		return reply + "..."
	}
	return string([]rune(reply)[:previewLen]) + "..."
}

// FailedPreview is the preview stored for a failed question.
const FailedPreview = "Processing failed"

// RelativeTime formats t relative to now.
func RelativeTime(now, t time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return plural(minutes, "minute") + " ago"
	case hours < 24:
		return plural(hours, "hour") + " ago"
	case days == 1:
		return "yesterday"
	case days < 7:
		return plural(days, "day") + " ago"
	}
	return "1 week ago"
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
