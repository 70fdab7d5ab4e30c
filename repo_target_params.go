package wsguard

import (
	"context"
	"net/http"
)

type (
	// TargetParams is everything a dial needs. The getter runs before every
	// connection attempt, so reconnects pick up fresh URLs and credentials.
	TargetParams struct {
		URL    string
		Header http.Header
	}

	TargetParamsGetter func(ctx context.Context) (TargetParams, error)

	TargetParamsRepo struct {
		logger Logger
		getter TargetParamsGetter
	}
)

func (r TargetParamsRepo) Get(ctx context.Context) (params TargetParams, err error) {
	if r.getter == nil {
		// No getter configured: the dial falls back to its static target.
		return
	}
	params, err = r.getter(ctx)
	if err != nil {
		r.logger.Errorf("cannot fetch target params: %s", err)
	}
	return
}

func NewTargetParamsRepo(logger Logger, getter TargetParamsGetter) TargetParamsRepo {
	return TargetParamsRepo{logger: logger, getter: getter}
}

// StaticTargetParams always dials the same URL with no extra headers.
func StaticTargetParams(rawURL string) TargetParamsGetter {
	return func(context.Context) (TargetParams, error) {
		return TargetParams{URL: rawURL}, nil
	}
}
