package dashboard

import (
	"context"
	"errors"
	"strings"

	"github.com/agenthands/eventlens/internal/client"
)

var ErrEmptyTweet = errors.New("tweet is required")

// Submitter sends tweets for ingestion, one at a time.
type Submitter struct {
	API      API
	Bus      Publisher
	Notifier Notifier

	guard Guard
}

func NewSubmitter(api API, b Publisher, notifier Notifier) *Submitter {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Submitter{API: api, Bus: b, Notifier: notifier}
}

func (s *Submitter) Loading() bool {
	return s.guard.Busy()
}

// Submit posts the tweet. It returns ErrBusy, without a request, while a
// previous submission is pending.
func (s *Submitter) Submit(ctx context.Context, tweet string) (*client.SubmitResponse, error) {
	tweet = strings.TrimSpace(tweet)
	if tweet == "" {
		s.Notifier.Error("Please enter a tweet")
		return nil, ErrEmptyTweet
	}

	var out *client.SubmitResponse
	err := s.guard.Do(func() error {
		resp, err := s.API.SubmitTweet(ctx, tweet)
		if err != nil {
			s.Notifier.Error(errorMessage("Failed to submit tweet", err))
			return err
		}
		out = resp
		s.Notifier.Info(resp.Message)
		if resp.Informative && s.Bus != nil {
			s.Bus.Refresh("submitTweet")
		}
		return nil
	})
	return out, err
}
