package report

import "encoding/json"

// JSON schemas enforced through the gateway's structured-output mode.
// Every object closes additionalProperties so the models cannot drift.

var playerInfoSchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "string"},
		"name": {"type": "string"},
		"position": {"type": "string"},
		"age": {"type": "integer"},
		"club": {"type": "string"}
	},
	"required": ["id", "name", "position", "age", "club"],
	"additionalProperties": false
}`

var statisticSchema = `{
	"type": "object",
	"properties": {
		"label": {"type": "string"},
		"value": {"type": "string"}
	},
	"required": ["label", "value"],
	"additionalProperties": false
}`

var analysisSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"player_info": ` + playerInfoSchema + `,
		"executive_summary": {"type": "string"},
		"player_development": {"type": "string"},
		"breakout_analysis": {"type": "string"},
		"valuation_insights": {"type": "string"},
		"transfer_fee_analysis": {"type": "string"},
		"key_statistics": {"type": "array", "items": ` + statisticSchema + `},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"weaknesses": {"type": "array", "items": {"type": "string"}},
		"recommendation": {"type": "string"}
	},
	"required": ["player_info", "executive_summary", "player_development", "breakout_analysis", "valuation_insights", "transfer_fee_analysis", "key_statistics", "strengths", "weaknesses", "recommendation"],
	"additionalProperties": false
}`)

var newsAnalysisSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"analysis": {"type": "string"}
	},
	"required": ["analysis"],
	"additionalProperties": false
}`)

var newsArticleSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"summary": {"type": "string"},
		"date": {"type": "string"},
		"source": {"type": "string"},
		"relevance": {"type": "string", "enum": ["high", "medium", "low"]}
	},
	"required": ["title", "summary", "date", "source", "relevance"],
	"additionalProperties": false
}`

var reportSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"player_info": ` + playerInfoSchema + `,
		"report": {
			"type": "object",
			"properties": {
				"executive_summary": {"type": "string"},
				"player_development": {"type": "string"},
				"breakout_analysis": {"type": "string"},
				"valuation_insights": {"type": "string"},
				"transfer_fee_analysis": {"type": "string"},
				"key_statistics": {"type": "array", "items": ` + statisticSchema + `},
				"strengths": {"type": "array", "items": {"type": "string"}},
				"weaknesses": {"type": "array", "items": {"type": "string"}},
				"recommendation": {"type": "string"},
				"news_context": {"type": "string"}
			},
			"required": ["executive_summary", "player_development", "breakout_analysis", "valuation_insights", "transfer_fee_analysis", "key_statistics", "strengths", "weaknesses", "recommendation", "news_context"],
			"additionalProperties": false
		},
		"news": {"type": "array", "items": ` + newsArticleSchema + `},
		"generated_at": {"type": "string"}
	},
	"required": ["player_info", "report", "news", "generated_at"],
	"additionalProperties": false
}`)
