package client

import (
	"context"

	"github.com/dmitrijs2005/mediacatalog/internal/client/models"
)

// Client is the remote media catalog API.
type Client interface {
	// FetchCatalog reads the whole catalog in server order.
	FetchCatalog(ctx context.Context) ([]*models.MediaItem, error)
	// ToggleBookmark flips the bookmark of item id and returns the value the
	// server now holds.
	ToggleBookmark(ctx context.Context, id string) (bool, error)
	SignIn(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	SignUp(ctx context.Context, reg models.Registration) (*models.AuthResponse, error)
}
