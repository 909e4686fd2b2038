package services

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDifficultyBand(t *testing.T) {
	Convey("Given levels across the 1-9 scale", t, func() {
		label, color := DifficultyBand(1)
		So(label, ShouldEqual, "入門")
		So(color, ShouldNotBeEmpty)

		label, _ = DifficultyBand(5)
		So(label, ShouldEqual, "中級")

		label, _ = DifficultyBand(9)
		So(label, ShouldEqual, "上級+")
	})

	Convey("Given an out-of-range level", t, func() {
		label, color := DifficultyBand(42)
		expectedLabel, expectedColor := DifficultyBand(1)
		So(label, ShouldEqual, expectedLabel)
		So(color, ShouldEqual, expectedColor)
	})
}

func TestParseAISettings(t *testing.T) {
	Convey("Given a valid stored blob", t, func() {
		settings := parseAISettings(json.RawMessage(`{"max_tokens":800,"response_format":"json"}`))
		So(settings.MaxTokens, ShouldEqual, 800)
		So(settings.ResponseFormat, ShouldEqual, "json")
	})

	Convey("Given a NULL column", t, func() {
		settings := parseAISettings(nil)
		So(settings, ShouldResemble, defaultAISettings())
	})

	Convey("Given a malformed blob", t, func() {
		settings := parseAISettings(json.RawMessage(`"garbage"`))
		So(settings, ShouldResemble, defaultAISettings())
	})

	Convey("Given out-of-bounds values", t, func() {
		settings := parseAISettings(json.RawMessage(`{"max_tokens":99999,"response_format":"xml"}`))
		So(settings, ShouldResemble, defaultAISettings())
	})
}
