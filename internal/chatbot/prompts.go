package chatbot

// Canned terminal replies. These are returned verbatim so clients and
// tests can match on them.
const (
	// errorApology replaces the assistant answer when an agent fails.
	errorApology = "I'm sorry, I encountered an error processing your request. Please try again."

	// emptyApology replaces the assistant answer when a stream completes
	// without producing any text.
	emptyApology = "I apologize, but I couldn't generate a response. Could you please rephrase your question?"
)

const rewriteSystemPrompt = `You rewrite a user's latest chat message into a fully self-contained query. Resolve pronouns and references ("he", "that club", "the second one") using the conversation so far. Do not answer the query. If the message is already self-contained, return it unchanged.`

const rewriteUserPrompt = `Conversation so far:
{history}

Latest message:
{query}

Return a JSON object with a single "rewritten_query" key.`

const routerSystemPrompt = `You classify a soccer chat query into exactly one category. Use "report" when the query asks about a specific player's scouting report, statistics, valuation, transfer fee or news covered by a generated report. Use "general" for everything else: rules, history, opinions, small talk and questions about other players or teams in general.`

const routerUserPrompt = `Classify this query:
{query}

Return a JSON object with a single "classification" key whose value is "report" or "general".`

const generalSystemPrompt = `You are a knowledgeable, friendly soccer assistant. Answer questions about soccer: players, clubs, competitions, rules, tactics and history. Keep answers conversational and concise. If a question needs a specific player's scouting report that you do not have, say so.`

const reportAnswerSystemPrompt = `You are a soccer scouting assistant. Answer the user's question using ONLY the player report and raw player data below. Quote figures exactly as they appear. If neither contains the answer, say the report does not cover it; do not guess.

Player report:
{report}

Original player data:
{player_data}`
