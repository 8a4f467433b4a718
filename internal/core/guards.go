// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"strings"

	"github.com/toeirei/panaderia/internal/model"
)

// Screen paths shared by the router of the console and the guards.
const (
	RouteLogin        = "/login"
	RouteDashboard    = "/dashboard"
	RouteUnauthorized = "/unauthorized"
)

// Roles allowed to create or edit customers.
var CustomerEditorRoles = []string{model.RoleDeveloper, model.RoleSuperAdmin, model.RoleAdministrator}

// Roles allowed to create or edit products.
var ProductEditorRoles = []string{model.RoleDeveloper, model.RoleSuperAdmin, model.RoleAdministrator, model.RoleInventory}

// Route is one screen of the console. Public routes skip the login check;
// a non-empty Roles list additionally requires one of those roles.
type Route struct {
	Path   string
	Title  string
	Public bool
	Roles  []string
}

// Routes is the screen table of the console.
var Routes = []Route{
	{Path: RouteLogin, Title: "Iniciar Sesión", Public: true},
	{Path: RouteUnauthorized, Title: "Acceso denegado", Public: true},
	{Path: "/", Title: "Menú Principal"},
	{Path: RouteDashboard, Title: "Dashboard"},
	{Path: "/notifications", Title: "Notificaciones"},
	{Path: "/reports", Title: "Reportes"},

	{Path: "/customers", Title: "Lista de Clientes"},
	{Path: "/customers/customer-form", Title: "Formulario de Cliente", Roles: CustomerEditorRoles},
	{Path: "/customers/customer-new", Title: "Clientes Nuevos"},
	{Path: "/customers/customer-edit/:id", Title: "Editar Cliente", Roles: CustomerEditorRoles},
	{Path: "/customers/customer-details/:id", Title: "Detalles del Cliente"},

	{Path: "/employees", Title: "Colaboradores"},
	{Path: "/employees/create", Title: "Registrar Colaborador"},
	{Path: "/employees/edit/:id", Title: "Editar Colaborador"},
	{Path: "/employees/view/:id", Title: "Detalles del Colaborador"},

	{Path: "/products", Title: "Gestión de Productos"},
	{Path: "/products/create", Title: "Registrar Producto", Roles: ProductEditorRoles},
	{Path: "/products/edit/:id", Title: "Editar Producto", Roles: ProductEditorRoles},
	{Path: "/products/view/:id", Title: "Detalles del Producto"},

	{Path: "/orders", Title: "Gestión de Pedidos"},
	{Path: "/orders/create", Title: "Crear Pedido"},
	{Path: "/orders/edit/:id", Title: "Editar Pedido"},
	{Path: "/orders/view/:id", Title: "Detalles del Pedido"},
}

// MatchRoute finds the route for path and the value of its :id segment.
func MatchRoute(path string) (Route, string, bool) {
	segs := splitPath(path)
	for _, r := range Routes {
		pattern := splitPath(r.Path)
		if len(pattern) != len(segs) {
			continue
		}
		id, ok := "", true
		for i, p := range pattern {
			if strings.HasPrefix(p, ":") {
				id = segs[i]
				continue
			}
			if p != segs[i] {
				ok = false
				break
			}
		}
		if ok {
			return r, id, true
		}
	}
	return Route{}, "", false
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Access is what a guard knows about the signed-in user. Screens check
// roles exactly; the menu uses the looser substring match.
type Access interface {
	IsAuthenticated() bool
	HasAnyRole(roles ...string) bool
	HasAnyExactRole(roles ...string) bool
}

// Decision is the outcome of a navigation check. Redirect is set when the
// navigation is refused.
type Decision struct {
	Route    Route
	ID       string
	Allowed  bool
	Redirect string
}

// Guard decides whether the user may open path. Unknown paths and
// signed-out users go to the login screen; missing roles go to the
// unauthorized screen.
func Guard(a Access, path string) Decision {
	r, id, ok := MatchRoute(path)
	if !ok {
		return Decision{Redirect: RouteLogin}
	}
	d := Decision{Route: r, ID: id}
	switch {
	case r.Public:
	case !a.IsAuthenticated():
		d.Redirect = RouteLogin
		return d
	case len(r.Roles) > 0 && !a.HasAnyExactRole(r.Roles...):
		d.Redirect = RouteUnauthorized
		return d
	}
	d.Allowed = true
	return d
}

// MenuCard is one entry of the main menu.
type MenuCard struct {
	Title       string
	Description string
	Icon        string
	Route       string
	Roles       []string
}

// MenuCards is the full main menu.
var MenuCards = []MenuCard{
	{Title: "Clientes", Description: "Gestión completa de clientes", Icon: "groups", Route: "/customers"},
	{Title: "Pedidos", Description: "Gestión de pedidos", Icon: "shopping_cart", Route: "/orders"},
	{Title: "Productos", Description: "Gestión de productos", Icon: "store", Route: "/products"},
	{Title: "Colaboradores", Description: "Ver colaboradores", Icon: "group", Route: "/employees"},
	{Title: "Nuevo Cliente", Description: "Registrar un nuevo cliente", Icon: "person_add", Route: "/customers/customer-form", Roles: CustomerEditorRoles},
	{Title: "Nuevo Producto", Description: "Registrar un nuevo producto", Icon: "add_business", Route: "/products/create", Roles: ProductEditorRoles},
	{Title: "Notificaciones", Description: "Cumpleaños de clientes", Icon: "notifications", Route: "/notifications"},
	{Title: "Reportes", Description: "Ver reportes exportados", Icon: "assessment", Route: "/reports"},
	{Title: "Estadísticas", Description: "Ver estadísticas de ventas", Icon: "trending_up", Route: RouteDashboard},
}

// VisibleMenuCards returns the cards the user's roles allow, in menu order.
func VisibleMenuCards(a Access) []MenuCard {
	var out []MenuCard
	for _, c := range MenuCards {
		if len(c.Roles) == 0 || a.HasAnyRole(c.Roles...) {
			out = append(out, c)
		}
	}
	return out
}
