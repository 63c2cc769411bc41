package notes_grpc

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	model "notes-blog-service/internal/domain/models"
)

// maxExactInt is the largest integer a protobuf number value holds exactly.
const maxExactInt = 1 << 53

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

// intField reads an integral number. A missing field is zero.
func intField(req *structpb.Struct, name string) (int64, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, nil
	}
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return 0, fmt.Errorf("field %s must be a number", name)
	}
	n := v.GetNumberValue()
	if n != math.Trunc(n) || math.Abs(n) > maxExactInt {
		return 0, fmt.Errorf("field %s must be an integer", name)
	}
	return int64(n), nil
}

func postFields(p *model.Post) map[string]any {
	fields := map[string]any{
		"id":           p.ID,
		"title":        p.Title,
		"body":         p.Body,
		"author":       p.Author,
		"author_email": p.AuthorEmail,
		"created_at":   p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if p.UpdatedAt != nil {
		fields["updated_at"] = p.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return fields
}

func postsValue(posts []*model.Post) []any {
	items := make([]any, 0, len(posts))
	for _, p := range posts {
		items = append(items, postFields(p))
	}
	return items
}

func postToStruct(p *model.Post) (*structpb.Struct, error) {
	return structpb.NewStruct(postFields(p))
}

func postsToStruct(posts []*model.Post) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"items": postsValue(posts),
		"count": len(posts),
	})
}

func pageToStruct(page *model.Page) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"items":        postsValue(page.Items),
		"number":       page.Number,
		"size":         page.Size,
		"total_pages":  page.TotalPages,
		"total_items":  page.TotalItems,
		"out_of_range": page.OutOfRange,
	})
}
