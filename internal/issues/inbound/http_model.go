package inbound

type Issue struct {
	ID        int    `json:"id"`
	VolumeNum int    `json:"volume_num"`
	IssueNum  int    `json:"issue_num"`
	Cover     string `json:"cover"`
}

type Volume struct {
	Number int     `json:"number"`
	Issues []Issue `json:"issues"`
}

type VolumesResponse struct {
	Volumes []Volume `json:"volumes"`
	total   int
}

func (r VolumesResponse) Meta() map[string]any {
	return map[string]any{
		"volumes": len(r.Volumes),
		"total":   r.total,
	}
}
