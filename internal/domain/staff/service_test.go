package staff

import (
	"context"
	"fmt"
	"testing"
)

type mockRepo struct {
	emps map[string]*Employee
}

func newMockRepo() *mockRepo {
	return &mockRepo{emps: make(map[string]*Employee)}
}

func (m *mockRepo) Create(ctx context.Context, e *Employee) error {
	if _, ok := m.emps[e.Code]; ok {
		return fmt.Errorf("duplicate code %s", e.Code)
	}
	cp := *e
	m.emps[e.Code] = &cp
	return nil
}

func (m *mockRepo) GetByCode(ctx context.Context, code string) (*Employee, error) {
	e, ok := m.emps[code]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (m *mockRepo) List(ctx context.Context, empType string) ([]Employee, error) {
	var list []Employee
	for _, e := range m.emps {
		if !e.Active {
			continue
		}
		if empType != "" && e.Type != empType {
			continue
		}
		list = append(list, *e)
	}
	return list, nil
}

func (m *mockRepo) Update(ctx context.Context, e *Employee) error {
	if _, ok := m.emps[e.Code]; !ok {
		return fmt.Errorf("employee %s not found", e.Code)
	}
	cp := *e
	m.emps[e.Code] = &cp
	return nil
}

func (m *mockRepo) ListCodes(ctx context.Context) ([]string, error) {
	var codes []string
	for c := range m.emps {
		codes = append(codes, c)
	}
	return codes, nil
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCreateEmployee_AssignsCode(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, passthroughTx)
	e := &Employee{FirstName: "วิชัย", LastName: "รักษาดี", Type: "doctor"}
	if err := svc.CreateEmployee(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Code != "EMP001" {
		t.Fatalf("expected EMP001, got %s", e.Code)
	}
	if !e.Active {
		t.Fatal("new employee should be active")
	}
}

func TestCreateEmployee_RequiresTypeAndName(t *testing.T) {
	svc := NewService(newMockRepo(), passthroughTx)
	if err := svc.CreateEmployee(context.Background(), &Employee{Type: "nurse"}); err == nil {
		t.Fatal("expected missing name error")
	}
	if err := svc.CreateEmployee(context.Background(), &Employee{FirstName: "x"}); err == nil {
		t.Fatal("expected missing type error")
	}
}

func TestListEmployees_FilterByType(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, passthroughTx)
	for _, typ := range []string{"doctor", "doctor", "nurse"} {
		e := &Employee{FirstName: "x", Type: typ}
		if err := svc.CreateEmployee(context.Background(), e); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	doctors, err := svc.ListEmployees(context.Background(), "doctor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doctors) != 2 {
		t.Fatalf("expected 2 doctors, got %d", len(doctors))
	}
}

func TestDeactivate_HidesFromList(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, passthroughTx)
	e := &Employee{FirstName: "x", Type: "nurse"}
	if err := svc.CreateEmployee(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Deactivate(context.Background(), e.Code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, _ := svc.ListEmployees(context.Background(), "")
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}
