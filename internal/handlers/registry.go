package handlers

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	ArtistHandler      *ArtistHandler
	GalleryHandler     *GalleryHandler
	ApplicationHandler *ApplicationHandler
	// FileHandler is nil unless the local storage backend is used.
	FileHandler *FileHandler
}
