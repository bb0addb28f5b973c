package clock

import (
	"fmt"
	"math"
)

const (
	// FaceRadius is the radius of the analog face; the center sits at (FaceRadius, FaceRadius).
	FaceRadius = 120.0
	// MarkerDistance is the distance from the center to each hour mark.
	MarkerDistance = 110.0
)

// Mark is one of the twelve hour marks on the analog face.
type Mark struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Major bool    `json:"major"`
}

// AnalogFace holds hand rotations in degrees clockwise from 12 o'clock.
type AnalogFace struct {
	HourAngle   float64 `json:"hourAngle"`
	MinuteAngle float64 `json:"minuteAngle"`
	SecondAngle float64 `json:"secondAngle"`
	Marks       []Mark  `json:"marks"`
}

// DigitalDisplay is the 12-hour presentation of a Reading.
type DigitalDisplay struct {
	Hour     string `json:"hour"`
	Minute   string `json:"minute"`
	Second   string `json:"second"`
	Meridiem string `json:"meridiem"`
	Date     string `json:"date"`
}

var faceMarks = buildMarks()

func buildMarks() []Mark {
	marks := make([]Mark, 12)
	for i := range marks {
		// 12 o'clock is -90 degrees in screen coordinates.
		angle := float64(i*30-90) * math.Pi / 180
		marks[i] = Mark{
			Index: i,
			X:     FaceRadius + MarkerDistance*math.Cos(angle),
			Y:     FaceRadius + MarkerDistance*math.Sin(angle),
			Major: i%3 == 0,
		}
	}
	return marks
}

// HandAngles returns hour, minute and second hand rotations.
func HandAngles(hour, minute, second int) (float64, float64, float64) {
	return float64(hour%12)*30 + float64(minute)*0.5,
		float64(minute) * 6,
		float64(second) * 6
}

// Analog projects a reading onto the analog face.
func Analog(r Reading) AnalogFace {
	h, m, s := HandAngles(r.Hour, r.Minute, r.Second)
	marks := make([]Mark, len(faceMarks))
	copy(marks, faceMarks)
	return AnalogFace{
		HourAngle:   h,
		MinuteAngle: m,
		SecondAngle: s,
		Marks:       marks,
	}
}

// Digital projects a reading onto the digital display.
func Digital(r Reading) DigitalDisplay {
	return DigitalDisplay{
		Hour:     fmt.Sprintf("%02d", r.Hour12),
		Minute:   fmt.Sprintf("%02d", r.Minute),
		Second:   fmt.Sprintf("%02d", r.Second),
		Meridiem: r.Meridiem,
		Date:     r.Date,
	}
}
