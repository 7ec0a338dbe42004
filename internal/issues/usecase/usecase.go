package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/biped-mathnews/slugline-web/internal/issues/entity"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgapi"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerror"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"
)

type Dependency struct {
	Upstream pkgapi.Doer
}

type Usecase struct {
	upstream pkgapi.Doer
}

func New(dep Dependency) *Usecase {
	return &Usecase{upstream: dep.Upstream}
}

// List fetches every issue and groups them into volumes.
func (u *Usecase) List(ctx context.Context) ([]entity.Volume, error) {
	if u.upstream == nil {
		return nil, pkgerror.NewServer(errors.New("missing dependency"))
	}

	issues, err := pkgapi.Get[[]entity.Issue](ctx, u.upstream, entity.ListPath).Unwrap()
	if err != nil {
		return nil, mapUpstreamErr(err)
	}

	return GroupByVolume(issues), nil
}

// Get fetches a single issue.
func (u *Usecase) Get(ctx context.Context, id int) (entity.Issue, error) {
	if u.upstream == nil {
		return entity.Issue{}, pkgerror.NewServer(errors.New("missing dependency"))
	}
	if id < 1 {
		return entity.Issue{}, pkgerror.NewInvalidInput(errors.New("issue_id must be positive"))
	}

	issue, err := pkgapi.Get[entity.Issue](ctx, u.upstream, fmt.Sprintf(entity.GetPath, id)).Unwrap()
	if err != nil {
		return entity.Issue{}, mapUpstreamErr(err)
	}

	return issue, nil
}

// GroupByVolume splits issues into runs of equal volume number, keeping the
// upstream order. A volume number that reappears later starts a new run.
func GroupByVolume(issues []entity.Issue) []entity.Volume {
	volumes := []entity.Volume{}
	for _, issue := range issues {
		n := len(volumes)
		if n == 0 || volumes[n-1].Number != issue.VolumeNum {
			volumes = append(volumes, entity.Volume{Number: issue.VolumeNum})
			n++
		}
		volumes[n-1].Issues = append(volumes[n-1].Issues, issue)
	}
	return volumes
}

func mapUpstreamErr(err error) error {
	var payload pkgapi.ErrorPayload
	if !errors.As(err, &payload) {
		return pkgerror.NewServer(err)
	}

	if payload.Has(entity.CodeIssueNotFound) || payload.Has(pkgerrtext.CodeNotFound) {
		return pkgerror.NewBusiness("issue not found", pkgerror.CodeNotFound, payload.Detail...)
	}

	return pkgerror.NewUpstream(payload.Detail...)
}
