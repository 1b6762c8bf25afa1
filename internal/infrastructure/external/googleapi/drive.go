package googleapi

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DocRef identifies one document found in the drive folder
type DocRef struct {
	ID           string
	Name         string
	ModifiedTime string
}

// DriveClient searches the meeting notes folder
type DriveClient struct {
	svc *drive.Service
}

// NewDriveClient creates a drive client on the shared token source
func NewDriveClient(ctx context.Context, ts oauth2.TokenSource) (*DriveClient, error) {
	svc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &DriveClient{svc: svc}, nil
}

// SearchLatestDoc returns the most recently modified document in the
// folder whose name contains every given substring; nil when nothing
// matches. Single quotes in terms are stripped to keep the query valid.
func (c *DriveClient) SearchLatestDoc(ctx context.Context, folderID string, nameContains ...string) (*DocRef, error) {
	conds := []string{
		fmt.Sprintf("'%s' in parents", sanitizeTerm(folderID)),
		"mimeType='application/vnd.google-apps.document'",
		"trashed=false",
	}
	for _, term := range nameContains {
		if term = strings.TrimSpace(term); term != "" {
			conds = append(conds, fmt.Sprintf("name contains '%s'", sanitizeTerm(term)))
		}
	}

	res, err := c.svc.Files.List().
		Q(strings.Join(conds, " and ")).
		OrderBy("modifiedTime desc").
		Fields("files(id,name,modifiedTime)").
		PageSize(10).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("drive search failed: %w", err)
	}
	if len(res.Files) == 0 {
		return nil, nil
	}
	f := res.Files[0]
	return &DocRef{ID: f.Id, Name: f.Name, ModifiedTime: f.ModifiedTime}, nil
}

func sanitizeTerm(s string) string {
	return strings.ReplaceAll(s, "'", "")
}
