// Package text exposes a small public API for running the tutor from other
// programs.
//
// Typical usage is to construct a FullResponse querier and ask it for a
// lesson on the last user message of a chat:
//
//	ctx := context.Background()
//	q := text.NewFullResponseQuerier(text.WithModel("gpt-4o-mini"))
//	if err := q.Setup(ctx); err != nil {
//	    // handle error, most likely a missing api key
//	}
//
//	chat := models.Chat{Messages: []models.Message{{Role: "user", Content: "ser vs estar"}}}
//	reply, err := q.Query(ctx, chat)
//	if err != nil {
//	    // handle error
//	}
//	_ = reply
//
// Additional tools can be injected with WithLLMTools, they're registered
// next to the built-in tutor tools.
package text
