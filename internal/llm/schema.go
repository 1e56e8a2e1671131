package llm

import "google.golang.org/genai"

// responseSchema constrains model output to the classification envelope:
// one result per transaction, each with proposed ledger entries. The model
// is free to omit transactions it cannot classify.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"results": {
				Type:        genai.TypeArray,
				Description: "One result per classified bank transaction.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {
							Type:        genai.TypeString,
							Description: "The transaction identifier, copied verbatim from the input.",
						},
						"entries": {
							Type: genai.TypeArray,
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"account": {
										Type:        genai.TypeString,
										Description: "A leaf account name from the provided chart of accounts.",
									},
									"memo": {
										Type:        genai.TypeString,
										Description: "A short human-readable explanation of the classification.",
									},
									"confidence": {
										Type:        genai.TypeNumber,
										Description: "Classification confidence between 0 and 1.",
									},
								},
								Required: []string{"account", "memo", "confidence"},
							},
						},
					},
					Required: []string{"name", "entries"},
				},
			},
		},
		Required: []string{"results"},
	}
}
