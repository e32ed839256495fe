package javasrc

import (
	"context"
	"reflect"
	"testing"

	"github.com/refactorhq/java-context-graph/pkg/graph"
)

// analyzeOne analyzes a single-method class and returns its graph.
func analyzeOne(t *testing.T, code string) (*graph.ContextGraph, []MethodGraph) {
	t.Helper()
	results, err := AnalyzeFile(context.Background(), []byte(code), Options{})
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 method, got %d", len(results))
	}
	return results[0].Graph, results
}

func checkSucc(t *testing.T, name string, got graph.Adjacency, want map[int][]int) {
	t.Helper()
	for id, wantSucc := range want {
		if !reflect.DeepEqual(got[id], wantSucc) {
			t.Errorf("%s[%d] = %v, want %v", name, id, got[id], wantSucc)
		}
	}
}

func TestListMethods(t *testing.T) {
	code := `
public class Calculator {
    public Calculator() {}

    public int add(int a, int b) {
        return a + b;
    }

    private void reset() {}
}
`
	methods, err := ListMethods([]byte(code))
	if err != nil {
		t.Fatalf("ListMethods failed: %v", err)
	}

	if len(methods) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(methods))
	}
	wantNames := []string{"Calculator", "add", "reset"}
	for i, m := range methods {
		if m.Name != wantNames[i] {
			t.Errorf("method %d = %q, want %q", i, m.Name, wantNames[i])
		}
		if m.Span.StartLine <= 0 || m.Span.EndLine < m.Span.StartLine {
			t.Errorf("method %q has invalid span %+v", m.Name, m.Span)
		}
	}
}

func TestAnalyzeStraightLine(t *testing.T) {
	g, _ := analyzeOne(t, `
class C {
    int f(int a) {
        int x = a;
        int y = x + 1;
        return y;
    }
}
`)

	if len(g.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(g.Stmts))
	}
	if g.MethodName != "f" {
		t.Errorf("method name = %q, want f", g.MethodName)
	}

	if got, want := g.Stmts[0].Defs, []string{"x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("stmt 0 defs = %v, want %v", got, want)
	}
	if got, want := g.Stmts[0].Uses, []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("stmt 0 uses = %v, want %v", got, want)
	}
	if got, want := g.Stmts[2].Uses, []string{"y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("stmt 2 uses = %v, want %v", got, want)
	}

	checkSucc(t, "cfg_succ", g.CFGSucc, map[int][]int{0: {1}, 1: {2}, 2: {}})
	checkSucc(t, "dfg_succ", g.DFGSucc, map[int][]int{0: {1}, 1: {2}})
}

func TestAnalyzeIfElse(t *testing.T) {
	g, _ := analyzeOne(t, `
class C {
    int f(int a) {
        int x;
        if (a > 0) {
            x = 1;
        } else {
            x = 2;
        }
        return x;
    }
}
`)

	// 0=decl 1=if 2=then assign 3=else assign 4=return
	if len(g.Stmts) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(g.Stmts))
	}
	if got, want := g.Stmts[1].Uses, []string{"a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("if condition uses = %v, want %v", got, want)
	}

	checkSucc(t, "cfg_succ", g.CFGSucc, map[int][]int{
		0: {1},
		1: {2, 3},
		2: {4},
		3: {4},
		4: {},
	})

	// The declaration is killed on both paths; each branch assignment
	// reaches the merged use.
	checkSucc(t, "dfg_succ", g.DFGSucc, map[int][]int{2: {4}, 3: {4}})
	if _, ok := g.DFGSucc[0]; ok {
		t.Errorf("killed declaration should have no dfg key, got %v", g.DFGSucc[0])
	}
}

func TestAnalyzeWhileLoop(t *testing.T) {
	g, _ := analyzeOne(t, `
class C {
    int f(int n) {
        int i = 0;
        while (i < n) {
            i = i + 1;
        }
        return i;
    }
}
`)

	// 0=init 1=while 2=increment 3=return
	if len(g.Stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(g.Stmts))
	}

	checkSucc(t, "cfg_succ", g.CFGSucc, map[int][]int{
		0: {1},
		1: {2, 3},
		2: {1},
		3: {},
	})

	// Initial and loop-carried definitions both reach the condition, the
	// increment's own use, and the final return.
	checkSucc(t, "dfg_succ", g.DFGSucc, map[int][]int{
		0: {1, 2, 3},
		2: {1, 2, 3},
	})
}

func TestAnalyzeDoWhile(t *testing.T) {
	g, _ := analyzeOne(t, `
class C {
    int f(int n) {
        int i = 0;
        do {
            i = i + 1;
        } while (i < n);
        return i;
    }
}
`)

	// 0=init 1=do check 2=increment 3=return. Control enters the body
	// directly; body exits reach the check, which exits the loop.
	if len(g.Stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(g.Stmts))
	}

	checkSucc(t, "cfg_succ", g.CFGSucc, map[int][]int{
		0: {2},
		1: {3},
		2: {1},
		3: {},
	})
}

func TestAnalyzeForEach(t *testing.T) {
	g, _ := analyzeOne(t, `
class C {
    int sum(int[] xs) {
        int total = 0;
        for (int x : xs) {
            total = total + x;
        }
        return total;
    }
}
`)

	// 0=init 1=foreach 2=accumulate 3=return
	if len(g.Stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(g.Stmts))
	}
	if got, want := g.Stmts[1].Defs, []string{"x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("foreach defs = %v, want %v", got, want)
	}
	if got, want := g.Stmts[1].Uses, []string{"xs"}; !reflect.DeepEqual(got, want) {
		t.Errorf("foreach uses = %v, want %v", got, want)
	}

	checkSucc(t, "cfg_succ", g.CFGSucc, map[int][]int{
		0: {1},
		1: {2, 3},
		2: {1},
		3: {},
	})
}

func TestAnalyzeBreakExitsLoop(t *testing.T) {
	g, _ := analyzeOne(t, `
class C {
    void f(int n) {
        while (n > 0) {
            if (n == 1) {
                break;
            }
            n = n - 1;
        }
    }
}
`)

	// 0=while 1=if 2=break 3=decrement
	if len(g.Stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(g.Stmts))
	}
	checkSucc(t, "cfg_succ", g.CFGSucc, map[int][]int{
		0: {1},
		1: {2, 3},
		2: {},
		3: {0},
	})
}

func TestAnalyzeLabeledBreakDiagnostic(t *testing.T) {
	results, err := AnalyzeFile(context.Background(), []byte(`
class C {
    void f() {
        outer:
        while (true) {
            while (true) {
                break outer;
            }
        }
    }
}
`), Options{})
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 method, got %d", len(results))
	}

	diags := results[0].Diagnostics
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	// 0=outer while 1=inner while 2=break
	if diags[0].StatementID != 2 {
		t.Errorf("diagnostic statement = %d, want 2", diags[0].StatementID)
	}
}

func TestAnalyzeSwitchFallThrough(t *testing.T) {
	g, _ := analyzeOne(t, `
class C {
    int f(int k) {
        int r = 0;
        switch (k) {
        case 0:
            r = 1;
        case 1:
            r = 2;
            break;
        default:
            r = 3;
        }
        return r;
    }
}
`)

	// 0=init 1=switch 2=case0 3=case1 4=break 5=default 6=return
	if len(g.Stmts) != 7 {
		t.Fatalf("expected 7 statements, got %d", len(g.Stmts))
	}

	checkSucc(t, "cfg_succ", g.CFGSucc, map[int][]int{
		1: {2, 3, 5}, // dispatch to every case entry
		2: {3},       // fall-through
		4: {6},       // break exits to the return
	})
	if got, want := g.Stmts[1].Uses, []string{"k"}; !reflect.DeepEqual(got, want) {
		t.Errorf("switch uses = %v, want %v", got, want)
	}
}

func TestAnalyzeTryUnconnected(t *testing.T) {
	g, _ := analyzeOne(t, `
class C {
    int f(String s) {
        int r = 0;
        try {
            r = Integer.parseInt(s);
        } catch (NumberFormatException e) {
            r = -1;
        }
        return r;
    }
}
`)

	// 0=init 1=try 2=try body assign 3=catch assign 4=return
	if len(g.Stmts) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(g.Stmts))
	}
	checkSucc(t, "cfg_succ", g.CFGSucc, map[int][]int{
		0: {1},
		1: {4},
		2: {},
		3: {},
		4: {},
	})
}

func TestAnalyzeMethodWithoutBody(t *testing.T) {
	results, err := AnalyzeFile(context.Background(), []byte(`
interface I {
    int f(int a);
}
`), Options{})
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 method, got %d", len(results))
	}

	g := results[0].Graph
	if !g.Empty() {
		t.Errorf("expected empty graph, got %d statements", len(g.Stmts))
	}
	if g.CFGSucc == nil || g.DFGSucc == nil {
		t.Error("adjacency maps must be non-nil even for empty graphs")
	}
}

func TestAnalyzeFileFiltersAndOrders(t *testing.T) {
	code := []byte(`
class C {
    void first() { int a = 1; }
    void second() { int b = 2; }
    void third() { int c = 3; }
}
`)

	t.Run("all methods in source order", func(t *testing.T) {
		results, err := AnalyzeFile(context.Background(), code, Options{Workers: 2})
		if err != nil {
			t.Fatalf("AnalyzeFile failed: %v", err)
		}
		wantNames := []string{"first", "second", "third"}
		if len(results) != len(wantNames) {
			t.Fatalf("expected %d methods, got %d", len(wantNames), len(results))
		}
		for i, r := range results {
			if r.Method.Name != wantNames[i] {
				t.Errorf("result %d = %q, want %q", i, r.Method.Name, wantNames[i])
			}
		}
	})

	t.Run("method filter", func(t *testing.T) {
		results, err := AnalyzeFile(context.Background(), code, Options{Method: "second"})
		if err != nil {
			t.Fatalf("AnalyzeFile failed: %v", err)
		}
		if len(results) != 1 || results[0].Method.Name != "second" {
			t.Fatalf("expected only method second, got %v", results)
		}
	})

	t.Run("missing method", func(t *testing.T) {
		_, err := AnalyzeFile(context.Background(), code, Options{Method: "nope"})
		if err == nil {
			t.Fatal("expected error for unknown method")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		problems bool
	}{
		{
			name: "valid class",
			code: `class C { void f() { int x = 1; } }`,
		},
		{
			name:     "missing brace",
			code:     `class C { void f() { int x = 1; }`,
			problems: true,
		},
		{
			name:     "garbage",
			code:     `class C { void f() { int x = ; } }`,
			problems: true,
		},
		{
			name:     "empty input",
			code:     "",
			problems: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := Validate([]byte(tt.code))
			if tt.problems && len(problems) == 0 {
				t.Error("expected problems, got none")
			}
			if !tt.problems && len(problems) != 0 {
				t.Errorf("expected clean parse, got %v", problems)
			}
			for _, p := range problems {
				if p.Line < 1 {
					t.Errorf("problem has invalid line %d", p.Line)
				}
			}
		})
	}
}
