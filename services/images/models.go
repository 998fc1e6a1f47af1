package images

type Image struct {
	ID              string  `json:"id" gorm:"primaryKey;size:36"`
	FileName        string  `json:"fileName" gorm:"uniqueIndex;size:255;not null"`
	FileDescription *string `json:"fileDescription"`
	FileExtension   string  `json:"fileExtension" gorm:"size:16;not null"`
	FileSizeInBytes int64   `json:"fileSizeInBytes"`
	FilePath        string  `json:"filePath" gorm:"not null"`
}
