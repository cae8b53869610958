package models

import (
	"strings"

	"gorm.io/gorm"
)

// filesBaseURL prefixes File.Path to build public URLs.
var filesBaseURL = "http://localhost:3333/files"

// SetFilesBaseURL sets the public prefix used for File.URL.
func SetFilesBaseURL(u string) {
	filesBaseURL = strings.TrimRight(u, "/")
}

// File is an uploaded file, used as a user avatar.
type File struct {
	BaseModel
	Name string `gorm:"size:255;not null" json:"name"`
	Path string `gorm:"size:255;not null;uniqueIndex" json:"path"`
	URL  string `gorm:"-" json:"url"`
}

// AfterFind fills URL after the file is loaded.
func (f *File) AfterFind(tx *gorm.DB) error {
	f.SetURL()
	return nil
}

// SetURL builds the public URL from the stored path.
func (f *File) SetURL() {
	if f.Path == "" {
		f.URL = ""
		return
	}
	f.URL = filesBaseURL + "/" + f.Path
}
