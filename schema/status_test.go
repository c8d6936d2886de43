package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsUpgradeRequired(t *testing.T) {
	testCases := []struct {
		description string
		body        string
		expect      bool
	}{
		{
			description: "upgrade sentinel",
			body:        `{"status":"Failure","code":400,"message":"Upgrade request required"}`,
			expect:      true,
		},
		{
			description: "other failure",
			body:        `{"status":"Failure","code":400,"message":"bad request"}`,
			expect:      false,
		},
		{
			description: "wrong code",
			body:        `{"status":"Failure","code":500,"message":"Upgrade request required"}`,
			expect:      false,
		},
		{
			description: "not a status document",
			body:        `{"items":[]}`,
			expect:      false,
		},
		{
			description: "empty body",
			body:        "",
			expect:      false,
		},
		{
			description: "not JSON",
			body:        "plain text",
			expect:      false,
		},
	}
	for _, testCase := range testCases {
		actual := ParseStatus([]byte(testCase.body)).IsUpgradeRequired()
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestNewStatusError(t *testing.T) {
	testCases := []struct {
		description   string
		statusCode    int
		body          string
		expectMessage string
	}{
		{
			description:   "message from status document",
			statusCode:    404,
			body:          `{"status":"Failure","code":404,"message":"pods \"a\" not found"}`,
			expectMessage: `pods "a" not found`,
		},
		{
			description:   "raw body fallback",
			statusCode:    500,
			body:          "something broke",
			expectMessage: "something broke",
		},
		{
			description:   "status text fallback",
			statusCode:    503,
			body:          "",
			expectMessage: "Service Unavailable",
		},
	}
	for _, testCase := range testCases {
		err := NewStatusError(testCase.statusCode, []byte(testCase.body))
		assert.Equal(t, testCase.statusCode, err.StatusCode, testCase.description)
		assert.Equal(t, testCase.expectMessage, err.Message, testCase.description)
	}
}
