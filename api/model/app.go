package model

import "encoding/json"

// AppSummary is the reshaped view of one ArgoCD Application.
//
// ExternalURLs and Images are nil when the Application status carries no
// such key, and non-nil (possibly empty) when it does. Only nil slices are
// left out of the JSON encoding.
type AppSummary struct {
	Name          string
	Health        string
	LastUpdatedAt string // passed through from operationState.finishedAt
	Link          string
	ExternalURLs  []string
	Images        []ImageRef
}

type ImageRef struct {
	Image string `json:"image"`
	Tag   string `json:"tag"`
	SHA   string `json:"sha"`
}

type AppList struct {
	Apps []AppSummary `json:"apps"`
}

type appSummaryJSON struct {
	Name          string      `json:"app_name"`
	Health        string      `json:"argocd_status"`
	LastUpdatedAt string      `json:"last_updated_at"`
	Link          string      `json:"app_link"`
	ExternalURLs  *[]string   `json:"external_urls,omitempty"`
	Images        *[]ImageRef `json:"images,omitempty"`
}

func (s AppSummary) MarshalJSON() ([]byte, error) {
	out := appSummaryJSON{
		Name:          s.Name,
		Health:        s.Health,
		LastUpdatedAt: s.LastUpdatedAt,
		Link:          s.Link,
	}
	if s.ExternalURLs != nil {
		out.ExternalURLs = &s.ExternalURLs
	}
	if s.Images != nil {
		out.Images = &s.Images
	}
	return json.Marshal(out)
}

func (s *AppSummary) UnmarshalJSON(data []byte) error {
	var in appSummaryJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = AppSummary{
		Name:          in.Name,
		Health:        in.Health,
		LastUpdatedAt: in.LastUpdatedAt,
		Link:          in.Link,
	}
	if in.ExternalURLs != nil {
		s.ExternalURLs = *in.ExternalURLs
	}
	if in.Images != nil {
		s.Images = *in.Images
	}
	return nil
}
