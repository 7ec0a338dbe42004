package inbound

import (
	"context"
	"net/http"

	"github.com/biped-mathnews/slugline-web/internal/issues/entity"
	"github.com/biped-mathnews/slugline-web/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) List(ctx context.Context, r *http.Request) (any, error) {
	volumes, err := h.uc.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := VolumesResponse{Volumes: make([]Volume, 0, len(volumes))}
	for _, v := range volumes {
		issues := make([]Issue, 0, len(v.Issues))
		for _, issue := range v.Issues {
			issues = append(issues, toHTTPIssue(issue))
		}
		resp.Volumes = append(resp.Volumes, Volume{Number: v.Number, Issues: issues})
		resp.total += len(issues)
	}

	return resp, nil
}

func (h *HTTPEndpoint) Get(ctx context.Context, r *http.Request) (any, error) {
	id, err := pkgrouter.PositiveIntParam(ctx, "issue_id")
	if err != nil {
		return nil, err
	}

	issue, err := h.uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return toHTTPIssue(issue), nil
}

func toHTTPIssue(issue entity.Issue) Issue {
	return Issue{
		ID:        issue.ID,
		VolumeNum: issue.VolumeNum,
		IssueNum:  issue.IssueNum,
		Cover:     entity.DefaultCover,
	}
}
