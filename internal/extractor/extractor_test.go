package extractor

import (
	"testing"

	"github.com/docuscan/cli/internal/domain"
)

func TestVerbCall_LiteralPath(t *testing.T) {
	res := New("express").ExtractFile("app.js", `
const express = require('express');
const app = express();
app.get('/users', handler);
`)
	if len(res.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.Routes))
	}
	r := res.Routes[0]
	if r.Method != "GET" || r.Path != "/users" || r.Handler != "handler" {
		t.Fatalf("unexpected route: %+v", r)
	}
}

func TestVerbCall_MiddlewareChain(t *testing.T) {
	res := New("express").ExtractFile("app.js",
		"app.post('/orders', authenticate, validate, createOrder);\n")
	if len(res.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.Routes))
	}
	r := res.Routes[0]
	if r.Handler != "createOrder" {
		t.Errorf("expected handler createOrder, got %s", r.Handler)
	}
	if len(r.Middleware) != 2 || r.Middleware[0] != "authenticate" || r.Middleware[1] != "validate" {
		t.Errorf("unexpected middleware: %v", r.Middleware)
	}
}

func TestVerbCall_InlineHandlerUsesEnclosingFunction(t *testing.T) {
	res := New("express").ExtractFile("app.js", `
function registerRoutes(app) {
  app.get('/health', (req, res) => res.send('ok'));
}
`)
	if len(res.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.Routes))
	}
	if res.Routes[0].Handler != "registerRoutes" {
		t.Errorf("expected enclosing function name, got %s", res.Routes[0].Handler)
	}
}

func TestVerbCall_InlineHandlerWithoutEnclosingIsAnonymous(t *testing.T) {
	res := New("express").ExtractFile("app.js",
		"app.delete('/items/:id', async (req, res) => {});\n")
	if len(res.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.Routes))
	}
	r := res.Routes[0]
	if r.Handler != "anonymous" {
		t.Errorf("expected anonymous handler, got %s", r.Handler)
	}
	if len(r.Parameters) != 1 || r.Parameters[0].Name != "id" {
		t.Errorf("expected :id path parameter, got %v", r.Parameters)
	}
}

func TestVerbCall_NonLiteralPathKeptVerbatim(t *testing.T) {
	res := New("express").ExtractFile("app.js",
		"app.get(prefix + '/users', listUsers);\n")
	if len(res.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.Routes))
	}
	r := res.Routes[0]
	if r.Path != "prefix + '/users'" {
		t.Errorf("expected verbatim path expression, got %q", r.Path)
	}
	if r.Handler != "listUsers" {
		t.Errorf("expected handler listUsers, got %s", r.Handler)
	}
}

func TestFastifyRouteOptions(t *testing.T) {
	res := New("fastify").ExtractFile("routes.js", `
fastify.route({
  method: 'GET',
  url: '/products/:sku',
  handler: getProduct
});
`)
	if len(res.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.Routes))
	}
	r := res.Routes[0]
	if r.Method != "GET" || r.Path != "/products/:sku" || r.Handler != "getProduct" {
		t.Fatalf("unexpected route: %+v", r)
	}
}

func TestDecoratorRoutes_ControllerAssociation(t *testing.T) {
	res := New("nestjs").ExtractFile("products.controller.ts", `
import { Controller, Get, Post } from '@nestjs/common';

@Controller('products')
export class ProductsController {
  @Get()
  findAll() {}

  @Post('bulk')
  createMany() {}
}
`)
	if len(res.Controllers) != 1 {
		t.Fatalf("expected 1 controller, got %d", len(res.Controllers))
	}
	c := res.Controllers[0]
	if c.Name != "ProductsController" || c.BasePath != "products" {
		t.Fatalf("unexpected controller: %+v", c)
	}
	if len(c.Routes) != 2 || c.Routes[0] != "findAll" || c.Routes[1] != "createMany" {
		t.Fatalf("unexpected controller routes: %v", c.Routes)
	}

	if len(res.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(res.Routes))
	}
	if res.Routes[0].Method != "GET" || res.Routes[0].Path != "/products" {
		t.Errorf("unexpected first route: %+v", res.Routes[0])
	}
	if res.Routes[1].Method != "POST" || res.Routes[1].Path != "/products/bulk" {
		t.Errorf("unexpected second route: %+v", res.Routes[1])
	}
}

func TestDuplicateRecognitionIsPreserved(t *testing.T) {
	// A Controller class fires both the controller rule and the class
	// type rule; both descriptors are kept.
	res := New("nestjs").ExtractFile("users.controller.ts", `
export class UsersController {
  findAll() {}
}
`)
	if len(res.Controllers) != 1 {
		t.Fatalf("expected controller descriptor, got %d", len(res.Controllers))
	}
	foundClassType := false
	for _, typ := range res.Types {
		if typ.Name == "UsersController" && typ.Kind == domain.TypeKindClass {
			foundClassType = true
		}
	}
	if !foundClassType {
		t.Fatalf("expected class type descriptor alongside controller, types: %+v", res.Types)
	}
}

func TestServiceExtraction_Methods(t *testing.T) {
	res := New("nestjs").ExtractFile("orders.service.ts", `
@Injectable()
export class OrdersService {
  async findOne(id: string): Promise<Order> {
    return this.repo.find(id);
  }

  create(dto: CreateOrderDto, notify?: boolean) {
    return this.repo.save(dto);
  }
}
`)
	if len(res.Services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(res.Services))
	}
	s := res.Services[0]
	if s.Name != "OrdersService" {
		t.Fatalf("unexpected service name: %s", s.Name)
	}
	names := map[string]bool{}
	for _, m := range s.Methods {
		names[m.Name] = true
	}
	if !names["findOne"] || !names["create"] {
		t.Fatalf("expected findOne and create methods, got %+v", s.Methods)
	}
	for _, m := range s.Methods {
		if m.Name == "create" {
			if len(m.Parameters) != 2 {
				t.Fatalf("expected 2 parameters on create, got %v", m.Parameters)
			}
			if !m.Parameters[1].Optional {
				t.Errorf("expected notify to be optional")
			}
		}
	}
}

func TestInterfaceProperties(t *testing.T) {
	res := New("generic").ExtractFile("types.ts", `
export interface User {
  id: number;
  name: string;
  email?: string;
  settings: {
    theme: string;
  };
}
`)
	if len(res.Types) != 1 {
		t.Fatalf("expected 1 type, got %d", len(res.Types))
	}
	typ := res.Types[0]
	if typ.Kind != domain.TypeKindInterface || typ.Name != "User" {
		t.Fatalf("unexpected type: %+v", typ)
	}

	byName := map[string]domain.Property{}
	for _, p := range typ.Properties {
		byName[p.Name] = p
	}
	if byName["id"].Type != "number" {
		t.Errorf("expected id: number, got %+v", byName["id"])
	}
	if !byName["email"].Optional {
		t.Errorf("expected email to be optional")
	}
	// nested object property: only the top-level name is attributed
	if _, ok := byName["theme"]; ok {
		t.Errorf("nested property should not be attributed at top level")
	}
	if _, ok := byName["settings"]; !ok {
		t.Errorf("expected settings property at top level")
	}
}

func TestEnumAndTypeAlias(t *testing.T) {
	res := New("generic").ExtractFile("types.ts", `
export enum Status {
  Active = 'active',
  Disabled = 'disabled',
}

export type UserId = string;

export type Credentials = {
  username: string;
  password: string;
};
`)
	kinds := map[string]domain.TypeKind{}
	propCount := map[string]int{}
	for _, typ := range res.Types {
		kinds[typ.Name] = typ.Kind
		propCount[typ.Name] = len(typ.Properties)
	}

	if kinds["Status"] != domain.TypeKindEnum || propCount["Status"] != 2 {
		t.Errorf("unexpected enum extraction: kind=%s props=%d", kinds["Status"], propCount["Status"])
	}
	if kinds["UserId"] != domain.TypeKindAlias || propCount["UserId"] != 0 {
		t.Errorf("unexpected alias extraction for UserId")
	}
	if kinds["Credentials"] != domain.TypeKindAlias || propCount["Credentials"] != 2 {
		t.Errorf("unexpected alias extraction for Credentials: %d props", propCount["Credentials"])
	}
}

func TestRoutesKeepSourceOrder(t *testing.T) {
	res := New("express").ExtractFile("app.js", `
app.post('/b', createB);
app.get('/a', getA);
app.delete('/c', deleteC);
`)
	if len(res.Routes) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(res.Routes))
	}
	want := []string{"/b", "/a", "/c"}
	for i, path := range want {
		if res.Routes[i].Path != path {
			t.Fatalf("expected route %d to be %s, got %s", i, path, res.Routes[i].Path)
		}
	}
}

func TestMalformedInputProducesNothing(t *testing.T) {
	res := New("generic").ExtractFile("broken.ts", "class {{{ app.get( 'nope\n")
	if len(res.Routes) != 0 {
		t.Fatalf("expected no routes from malformed input, got %d", len(res.Routes))
	}
}
