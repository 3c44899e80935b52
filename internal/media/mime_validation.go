package media

import (
	"fmt"
	"sort"
	"strings"

	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"github.com/gabriel-vasile/mimetype"
)

type mimeGroup string

const (
	mimeGroupImages    mimeGroup = "images"
	mimeGroupPDFs      mimeGroup = "pdfs"
	mimeGroupDocuments mimeGroup = "documents"
)

var mimeGroupNames = map[mimeGroup]string{
	mimeGroupImages:    "images",
	mimeGroupPDFs:      "PDFs",
	mimeGroupDocuments: "Word documents",
}

var mimeGroupTypes = map[mimeGroup][]string{
	mimeGroupImages: {"image/png", "image/jpeg", "image/webp", "image/gif"},
	mimeGroupPDFs:   {"application/pdf"},
	mimeGroupDocuments: {
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
}

var allowedMimeGroupsByFolder = map[enums.MediaFolder][]mimeGroup{
	enums.MediaFolderCV:           {mimeGroupPDFs, mimeGroupDocuments, mimeGroupImages},
	enums.MediaFolderCertificates: {mimeGroupPDFs, mimeGroupDocuments, mimeGroupImages},
	enums.MediaFolderEquipment:    {mimeGroupImages},
	enums.MediaFolderAvatars:      {mimeGroupImages},
}

var (
	mimeTypesByFolder        = buildMimeTypesByFolder()
	mimeDescriptionsByFolder = buildMimeDescriptions()
)

func buildMimeTypesByFolder() map[enums.MediaFolder][]string {
	result := make(map[enums.MediaFolder][]string, len(allowedMimeGroupsByFolder))
	for folder, groups := range allowedMimeGroupsByFolder {
		set := make(map[string]struct{})
		for _, group := range groups {
			for _, value := range mimeGroupTypes[group] {
				set[value] = struct{}{}
			}
		}
		list := make([]string, 0, len(set))
		for value := range set {
			list = append(list, value)
		}
		sort.Strings(list)
		result[folder] = list
	}
	return result
}

func buildMimeDescriptions() map[enums.MediaFolder]string {
	result := make(map[enums.MediaFolder]string, len(allowedMimeGroupsByFolder))
	for folder, groups := range allowedMimeGroupsByFolder {
		var descriptions []string
		for _, group := range groups {
			if name, ok := mimeGroupNames[group]; ok {
				descriptions = append(descriptions, name)
			}
		}
		result[folder] = humanReadableList(descriptions)
	}
	return result
}

func humanReadableList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return fmt.Sprintf("%s or %s", items[0], items[1])
	default:
		return fmt.Sprintf("%s, or %s", strings.Join(items[:len(items)-1], ", "), items[len(items)-1])
	}
}

// sniffMimeType detects the content type from the leading bytes of a file,
// ignoring whatever the client declared.
func sniffMimeType(head []byte) *mimetype.MIME {
	return mimetype.Detect(head)
}

// allowedMime reports the first type in the detected type's ancestry that the
// folder accepts.
func allowedMime(folder enums.MediaFolder, detected *mimetype.MIME) (string, bool) {
	allowed := mimeTypesByFolder[folder]
	for m := detected; m != nil; m = m.Parent() {
		if mimetype.EqualsAny(m.String(), allowed...) {
			return strings.ToLower(strings.SplitN(m.String(), ";", 2)[0]), true
		}
	}
	return "", false
}

func allowedMimeDescription(folder enums.MediaFolder) string {
	if msg, ok := mimeDescriptionsByFolder[folder]; ok && msg != "" {
		return msg
	}
	return "the approved file types"
}
