package datasource

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"chouquette-gateway/internal/upstream"
	"chouquette-gateway/internal/wordpress"
)

const menusPath = "/menus/v1/menus"

// MenuService covers the /menus/v1 endpoints.
type MenuService struct {
	client *upstream.Client
	logger *slog.Logger
}

// GetMenus lists all menus. The list endpoint only returns ids, so each menu
// is fetched individually; the per-id calls run concurrently and the result
// keeps the listing order.
func (s *MenuService) GetMenus(ctx context.Context) ([]wordpress.Menu, error) {
	body, err := s.client.Get(ctx, menusPath, nil)
	if err != nil {
		return nil, err
	}
	refs, err := wordpress.ReduceMenuRefs(body)
	if err != nil {
		return nil, err
	}

	menus := make([]*wordpress.Menu, len(refs))
	errs := make([]error, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i, id int) {
			defer wg.Done()
			body, err := s.client.Get(ctx, fmt.Sprintf("%s/%d", menusPath, id), nil)
			if err != nil {
				errs[i] = err
				return
			}
			menu, dropped, err := wordpress.ReduceMenu(body)
			if err != nil {
				errs[i] = err
				return
			}
			for _, item := range dropped {
				s.logger.Warn("dropping non-navigable menu item",
					"menu", menu.Slug, "type", item.Type, "title", item.Title)
			}
			menus[i] = menu
		}(i, ref.ID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	out := make([]wordpress.Menu, 0, len(menus))
	for _, menu := range menus {
		if menu != nil {
			out = append(out, *menu)
		}
	}
	return out, nil
}
