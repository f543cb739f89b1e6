package dto

// Pointer fields distinguish a key missing from the JSON body (nil) from an explicit
// zero value, which partial updates must apply.

type NoteRequest struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Favorite *bool     `json:"favorite"`
}

type BookmarkRequest struct {
	URL         *string   `json:"url"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Favorite    *bool     `json:"favorite"`
}

// StringValue dereferences s, treating nil as empty.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TagsValue(tags *[]string) []string {
	if tags == nil {
		return nil
	}
	return *tags
}

func BoolValue(b *bool) bool {
	return b != nil && *b
}
