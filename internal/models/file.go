package models

// File is an uploaded avatar image. Path is the name it is stored under.
type File struct {
	BaseModel
	Name string `gorm:"size:255;not null" json:"name"`
	Path string `gorm:"size:255;uniqueIndex;not null" json:"path"`
}

// FileView is the public representation of a File.
type FileView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// URL returns where the file is served from.
func (f *File) URL(appURL string) string {
	return appURL + "/files/" + f.Path
}

// View returns nil for a nil file so missing avatars encode as null.
func (f *File) View(appURL string) *FileView {
	if f == nil {
		return nil
	}
	return &FileView{ID: f.ID, Name: f.Name, Path: f.Path, URL: f.URL(appURL)}
}
