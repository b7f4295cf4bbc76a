package global

import (
	"testing"
)

type topicToneInput struct {
	Topic string `validate:"required,not_blank,no_xss"`
	Tone  string `validate:"required,script_tone"`
}

func TestInitValidator_CustomRules(t *testing.T) {
	InitValidator()

	cases := []struct {
		name  string
		input topicToneInput
		ok    bool
	}{
		{"hợp lệ", topicToneInput{Topic: "Lịch sử Rome", Tone: "educational"}, true},
		{"topic toàn khoảng trắng", topicToneInput{Topic: "   ", Tone: "educational"}, false},
		{"topic chứa script", topicToneInput{Topic: "<script>alert(1)</script>", Tone: "educational"}, false},
		{"tone lạ", topicToneInput{Topic: "Rome", Tone: "sarcastic"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate.Struct(tc.input)
			if tc.ok && err != nil {
				t.Errorf("mong đợi hợp lệ, nhận lỗi: %v", err)
			}
			if !tc.ok && err == nil {
				t.Errorf("mong đợi lỗi validate, nhưng không có")
			}
		})
	}
}
