package mutate

import "github.com/google/uuid"

func NewItemID() string { return "item-" + uuid.NewString()[:8] }

func NewTabID() string { return "tab-" + uuid.NewString()[:8] }
