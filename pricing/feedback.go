package pricing

const (
	FeedbackSuccess = "success"
	FeedbackError   = "error"
)

// Feedback is the toast/banner result handed back to the UI layer.
type Feedback struct {
	Kind    string `json:"status"`
	Message string `json:"message"`
}

func Success(message string) Feedback {
	return Feedback{Kind: FeedbackSuccess, Message: message}
}

func Failure(err error) Feedback {
	return Feedback{Kind: FeedbackError, Message: Message(err)}
}

func (f Feedback) OK() bool { return f.Kind == FeedbackSuccess }
