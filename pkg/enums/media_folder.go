package enums

import (
	"fmt"
	"strings"
)

// MediaFolder groups uploaded files in the media store.
type MediaFolder string

const (
	MediaFolderCV           MediaFolder = "cv"
	MediaFolderCertificates MediaFolder = "certificates"
	MediaFolderEquipment    MediaFolder = "equipment"
	MediaFolderAvatars      MediaFolder = "avatars"
)

var validMediaFolders = []MediaFolder{
	MediaFolderCV,
	MediaFolderCertificates,
	MediaFolderEquipment,
	MediaFolderAvatars,
}

func (f MediaFolder) IsValid() bool {
	for _, candidate := range validMediaFolders {
		if candidate == f {
			return true
		}
	}
	return false
}

func ParseMediaFolder(value string) (MediaFolder, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validMediaFolders {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media folder %q", value)
}
