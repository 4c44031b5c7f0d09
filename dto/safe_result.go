package dto

// SafeResult is the envelope returned for every exposed operation.
// When IsError is true, Result holds a human-readable message.
type SafeResult struct {
	IsError bool `json:"isError"`
	Result  any  `json:"result"`
}
