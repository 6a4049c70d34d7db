package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSearchResponseMarshalSuccess(t *testing.T) {
	resp := SearchOK("lofi", []VideoSummary{{
		Title:   "Lofi Girl",
		Link:    "https://www.youtube.com/watch?v=jfKfPfyJRdk",
		Channel: strPtr("Lofi Girl"),
	}})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"query": "lofi",
		"results": [{
			"title": "Lofi Girl",
			"link": "https://www.youtube.com/watch?v=jfKfPfyJRdk",
			"channel": "Lofi Girl",
			"published": null,
			"views": null
		}]
	}`, string(data))
}

func TestSearchResponseMarshalEmptyResults(t *testing.T) {
	data, err := json.Marshal(SearchOK("nothing", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"nothing","results":[]}`, string(data))

	data, err = json.Marshal(SearchResponse{Query: "zero"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"zero","results":[]}`, string(data))
}

func TestSearchResponseMarshalError(t *testing.T) {
	resp := SearchFailed(errors.New("Missing SERPAPI_API_KEY"))
	resp.Query = "ignored"

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Missing SERPAPI_API_KEY"}`, string(data))
}

func TestSearchFailedNeverEmpty(t *testing.T) {
	assert.Equal(t, "unknown error", SearchFailed(nil).Error)
	assert.True(t, SearchFailed(errors.New("")).Failed())
}

func TestSearchResponseUnmarshal(t *testing.T) {
	var ok SearchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"query":"q","results":[{"title":"a","link":"b"}]}`), &ok))
	assert.False(t, ok.Failed())
	require.Len(t, ok.Results, 1)
	assert.Nil(t, ok.Results[0].Views)

	var failed SearchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"error":"boom"}`), &failed))
	assert.True(t, failed.Failed())
	assert.Equal(t, "boom", failed.Error)
}

func TestSearchRequestLimit(t *testing.T) {
	two := 2
	assert.Equal(t, 5, (&SearchRequest{Query: strPtr("q")}).Limit(5))
	assert.Equal(t, 2, (&SearchRequest{Query: strPtr("q"), MaxResults: &two}).Limit(5))
}

func TestSearchRequestQueryText(t *testing.T) {
	assert.Equal(t, "", (&SearchRequest{}).QueryText())
	assert.Equal(t, "", (&SearchRequest{Query: strPtr("")}).QueryText())
	assert.Equal(t, "lofi", (&SearchRequest{Query: strPtr("lofi")}).QueryText())
}
