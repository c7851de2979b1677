// Package actdex provides a Go client for the actdex HTTP API: keyword
// search over ingested bare-act pages plus plain-language explanations.
//
// A client talks to a running actdex server:
//
//	client, _ := actdex.New("http://localhost:8000",
//	    actdex.WithAPIKey(os.Getenv("ACTDEX_API_KEY")),
//	)
//
//	res, _ := client.Search(ctx, "penalty for data breach")
//	for _, r := range res.Results {
//	    fmt.Println(r.ActName, r.PageNo, r.Snippet)
//	}
//
//	expl, _ := client.Explain(ctx, "data breach penalty kya hai", 5)
//	fmt.Println(expl.Explanation)
//
// API errors decode into *APIError and wrap matching sentinel errors, so
// errors.Is(err, actdex.ErrQuotaExceeded) works across the wire.
package actdex
