package mock

import (
	"context"

	"github.com/fwojciec/fictionfetch"
)

var _ fictionfetch.FictionService = (*FictionService)(nil)

// FictionService is a mock implementation of fictionfetch.FictionService.
type FictionService struct {
	FindFictionBySlugFn func(ctx context.Context, slug string) (*fictionfetch.Fiction, error)
	SaveFictionFn       func(ctx context.Context, fiction *fictionfetch.Fiction) error
}

func (s *FictionService) FindFictionBySlug(ctx context.Context, slug string) (*fictionfetch.Fiction, error) {
	return s.FindFictionBySlugFn(ctx, slug)
}

func (s *FictionService) SaveFiction(ctx context.Context, fiction *fictionfetch.Fiction) error {
	return s.SaveFictionFn(ctx, fiction)
}
