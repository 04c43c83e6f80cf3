package wallet

type transferRequest struct {
	Participant string `json:"participant"`
	Amount      int64  `json:"amount"`
}

type balanceResponse struct {
	Participant string `json:"participant"`
	Balance     int64  `json:"balance"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
