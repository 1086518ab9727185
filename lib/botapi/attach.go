// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

// attachPrefix marks a metadata value naming a sibling form field.
const attachPrefix = "attach://"

// Attachment keys. Each role gets its own key so that a thumbnail can
// never overwrite the file it belongs to.
const (
	keyMediaFile      = "tgbot_im_file"
	keyMediaThumbnail = "tgbot_im_thumb"
	keyMediaCover     = "tgbot_im_cover"

	keyPaidMediaFile      = "tgbot_ipm_file"
	keyPaidMediaThumbnail = "tgbot_ipm_thumb"
	keyPaidMediaCover     = "tgbot_ipm_cover"

	keyThumbnail = "tgbot_thumb"
	keyCover     = "tgbot_cover"
)

// attachKeys are the form field names used for one media item.
type attachKeys struct {
	file      string
	thumbnail string
	cover     string
}

var singleMediaKeys = attachKeys{file: keyMediaFile, thumbnail: keyMediaThumbnail, cover: keyMediaCover}

// attach returns the value that refers to file from inside a JSON
// metadata document. Identifiers and URLs are used as they are; an
// upload is stored as a file parameter under key and referred to as
// "attach://key".
func (params *Params) attach(key string, file InputFile) (string, error) {
	switch file := file.(type) {
	case FileID:
		return string(file), nil
	case FileURL:
		return string(file), nil
	case *FileReader:
		if file == nil {
			return "", &FormBuildError{Field: key, Reason: "file source is missing"}
		}
		if err := params.put(key, param{file: file}); err != nil {
			return "", err
		}
		return attachPrefix + key, nil
	default:
		return "", &FormBuildError{Field: key, Reason: "file is missing"}
	}
}

// setAttached stores file under name, moving an upload to key and
// storing the attach reference under name. Direct method parameters
// such as sendVideo's thumbnail and cover must be passed this way.
func (params *Params) setAttached(name, key string, file InputFile) *Params {
	reference, err := params.attach(key, file)
	if err != nil {
		params.fail(err)
		return params
	}
	return params.SetString(name, reference)
}
