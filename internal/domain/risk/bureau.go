package risk

import "context"

// Bureau resolves an applicant's credit score from an external source.
type Bureau interface {
	Score(ctx context.Context, customerID string) (int, error)
}

// StubBureau returns a fixed score for every applicant. Real bureau
// integration is out of scope; the constant mirrors the behavior the back
// office runs with today.
type StubBureau struct{}

const stubScore = 720

func (StubBureau) Score(ctx context.Context, customerID string) (int, error) {
	return stubScore, nil
}
