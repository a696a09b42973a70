package matcher

import (
	"strings"
	"testing"

	"github.com/huntridge-labs/argus/internal/model"
	"github.com/huntridge-labs/argus/internal/profile"
)

func mustCompile(t *testing.T, rules profile.Rules) *Matcher {
	t.Helper()
	m, err := Compile(rules)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	return m
}

func TestCompileFlattensInSeverityOrder(t *testing.T) {
	m := mustCompile(t, profile.Rules{
		Routine:        []profile.Rule{{Pattern: "a", Description: "r"}},
		Adaptive:       []profile.Rule{{Pattern: "b", Description: "a"}},
		Transformative: []profile.Rule{{Pattern: "c", Description: "t"}},
		Impact:         []profile.Rule{{Pattern: "d", Description: "i"}},
	})
	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}

	want := []model.Category{model.Routine, model.Adaptive, model.Transformative, model.Impact}
	for i, cat := range want {
		if m.rules[i].category != cat {
			t.Errorf("rules[%d].category = %s, want %s", i, m.rules[i].category, cat)
		}
	}
}

func TestCompileRejectsBadRegex(t *testing.T) {
	_, err := Compile(profile.Rules{
		Adaptive: []profile.Rule{{Pattern: "[unclosed", Description: "bad"}},
	})
	if err == nil {
		t.Fatal("expected error for malformed pattern")
	}
	if !strings.Contains(err.Error(), "rules.adaptive[0]") {
		t.Errorf("error should name the offending rule, got: %v", err)
	}
}

func TestFirstMatchWinsAcrossCategories(t *testing.T) {
	// A broad routine rule masks a later impact rule that would also match.
	m := mustCompile(t, profile.Rules{
		Routine: []profile.Rule{{Pattern: `tags`, Description: "tag changes"}},
		Impact:  []profile.Rule{{Attribute: `encryption`, Description: "encryption changes"}},
	})

	cls := m.Match(model.Change{
		ResourceType:      "aws_s3_bucket",
		ResourceName:      "logs",
		Operation:         "modify",
		AttributesChanged: []string{"tags.env", "server_side_encryption_configuration"},
	})
	if cls == nil {
		t.Fatal("expected a match")
	}
	if cls.Category != model.Routine {
		t.Errorf("Category = %s, want ROUTINE (first match wins)", cls.Category)
	}
}

func TestFirstMatchWinsWithinCategory(t *testing.T) {
	m := mustCompile(t, profile.Rules{
		Adaptive: []profile.Rule{
			{Pattern: `aws_instance`, Description: "first"},
			{Pattern: `aws_instance`, Description: "second"},
		},
	})
	cls := m.Match(model.Change{ResourceType: "aws_instance", ResourceName: "web", Operation: "modify"})
	if cls == nil {
		t.Fatal("expected a match")
	}
	if cls.Reasoning != "first" {
		t.Errorf("Reasoning = %q, want %q", cls.Reasoning, "first")
	}
}

func TestRuleMatchFields(t *testing.T) {
	m := mustCompile(t, profile.Rules{
		Transformative: []profile.Rule{{Resource: `aws_rds_.*\.engine`, Operation: "modify", Description: "Database engine changes"}},
	})
	cls := m.Match(model.Change{
		ResourceType:      "aws_rds_cluster",
		ResourceName:      "primary",
		Operation:         "modify",
		AttributesChanged: []string{"engine"},
	})
	if cls == nil {
		t.Fatal("expected a match")
	}
	if cls.Method != model.MethodRule {
		t.Errorf("Method = %q, want %q", cls.Method, model.MethodRule)
	}
	if cls.Confidence != 1.0 {
		t.Errorf("Confidence = %f, want 1.0", cls.Confidence)
	}
	if cls.Reasoning != "Database engine changes" {
		t.Errorf("Reasoning = %q", cls.Reasoning)
	}
	if cls.MatchedRule == "" {
		t.Error("MatchedRule is empty")
	}
	if !strings.HasPrefix(cls.MatchedRule, "transformative.") {
		t.Errorf("MatchedRule = %q, want transformative. prefix", cls.MatchedRule)
	}
}

func TestPatternMatchesAcrossAddressAttributesAndDiff(t *testing.T) {
	m := mustCompile(t, profile.Rules{
		Impact: []profile.Rule{{Pattern: `0\.0\.0\.0/0`, Description: "open cidr"}},
	})

	tests := []struct {
		name   string
		change model.Change
		want   bool
	}{
		{
			name:   "in diff text",
			change: model.Change{ResourceType: "aws_security_group", ResourceName: "web", DiffText: `+ cidr_blocks = ["0.0.0.0/0"]`},
			want:   true,
		},
		{
			name:   "in attribute name",
			change: model.Change{ResourceType: "x", ResourceName: "y", AttributesChanged: []string{"ingress.0.0.0.0/0"}},
			want:   true,
		},
		{
			name:   "absent",
			change: model.Change{ResourceType: "aws_security_group", ResourceName: "web", DiffText: `+ cidr_blocks = ["10.0.0.0/8"]`},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.change) != nil
			if got != tt.want {
				t.Errorf("matched = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResourceMatchesAttributePath(t *testing.T) {
	// Resource expressions with two or more dots also test type.name.attr.
	m := mustCompile(t, profile.Rules{
		Adaptive: []profile.Rule{{Resource: `aws_instance\..*\.instance_type`, Operation: "modify", Description: "Instance type changes"}},
	})

	cls := m.Match(model.Change{
		ResourceType:      "aws_instance",
		ResourceName:      "web",
		Operation:         "modify",
		AttributesChanged: []string{"instance_type"},
	})
	if cls == nil {
		t.Fatal("expected match via type.name.attr path")
	}
	if cls.Category != model.Adaptive {
		t.Errorf("Category = %s, want ADAPTIVE", cls.Category)
	}

	// Same rule, different attribute: no match.
	if m.Match(model.Change{
		ResourceType:      "aws_instance",
		ResourceName:      "web",
		Operation:         "modify",
		AttributesChanged: []string{"ami"},
	}) != nil {
		t.Error("expected no match when attribute differs")
	}
}

func TestResourceSingleDotDoesNotProbeAttributes(t *testing.T) {
	m := mustCompile(t, profile.Rules{
		Adaptive: []profile.Rule{{Resource: `web\.engine`, Description: "one dot"}},
	})
	// "aws_db.web" + attr "engine" would form "aws_db.web.engine", but the
	// expression has fewer than two dots so attribute paths are not probed.
	if m.Match(model.Change{
		ResourceType:      "aws_db",
		ResourceName:      "web",
		AttributesChanged: []string{"engine"},
	}) != nil {
		t.Error("expected no match for sub-two-dot resource expression")
	}
}

func TestAttributeMatchesNamesAndDiff(t *testing.T) {
	m := mustCompile(t, profile.Rules{
		Impact: []profile.Rule{{Attribute: `.*encryption.*`, Operation: "delete|modify", Description: "Encryption changes"}},
	})

	tests := []struct {
		name   string
		change model.Change
		want   bool
	}{
		{
			name: "attribute name",
			change: model.Change{ResourceType: "aws_s3_bucket", ResourceName: "logs", Operation: "modify",
				AttributesChanged: []string{"server_side_encryption_configuration"}},
			want: true,
		},
		{
			name: "diff text only",
			change: model.Change{ResourceType: "aws_s3_bucket", ResourceName: "logs", Operation: "delete",
				DiffText: "- encryption { enabled = true }"},
			want: true,
		},
		{
			name: "operation outside set",
			change: model.Change{ResourceType: "aws_s3_bucket", ResourceName: "logs", Operation: "create",
				AttributesChanged: []string{"server_side_encryption_configuration"}},
			want: false,
		},
		{
			name:   "attribute absent",
			change: model.Change{ResourceType: "aws_s3_bucket", ResourceName: "logs", Operation: "modify", AttributesChanged: []string{"acl"}},
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Match(tt.change) != nil
			if got != tt.want {
				t.Errorf("matched = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOperationSetIsCaseInsensitiveAndExact(t *testing.T) {
	m := mustCompile(t, profile.Rules{
		Impact: []profile.Rule{{Pattern: `aws_kms_key`, Operation: "delete|replace", Description: "key lifecycle"}},
	})

	tests := []struct {
		op   string
		want bool
	}{
		{"delete", true},
		{"DELETE", true},
		{"Replace", true},
		{"deleted", false},
		{"modify", false},
		{"", false},
	}
	for _, tt := range tests {
		got := m.Match(model.Change{ResourceType: "aws_kms_key", ResourceName: "main", Operation: tt.op}) != nil
		if got != tt.want {
			t.Errorf("operation %q: matched = %v, want %v", tt.op, got, tt.want)
		}
	}
}

func TestAllCriteriaMustMatch(t *testing.T) {
	m := mustCompile(t, profile.Rules{
		Impact: []profile.Rule{{
			Resource:    `aws_security_group\..*`,
			Attribute:   `ingress`,
			Pattern:     `0\.0\.0\.0/0`,
			Description: "Public security group",
		}},
	})

	full := model.Change{
		ResourceType:      "aws_security_group",
		ResourceName:      "web",
		Operation:         "modify",
		AttributesChanged: []string{"ingress"},
		DiffText:          `+ cidr_blocks = ["0.0.0.0/0"]`,
	}
	if m.Match(full) == nil {
		t.Error("expected match when all criteria hold")
	}

	noCIDR := full
	noCIDR.DiffText = `+ cidr_blocks = ["10.0.0.0/8"]`
	if m.Match(noCIDR) != nil {
		t.Error("expected no match when pattern criterion fails")
	}

	wrongResource := full
	wrongResource.ResourceType = "aws_network_acl"
	if m.Match(wrongResource) != nil {
		t.Error("expected no match when resource criterion fails")
	}
}

func TestCaseInsensitiveByDefault(t *testing.T) {
	m := mustCompile(t, profile.Rules{
		Routine: []profile.Rule{{Pattern: `tags`, Description: "tag changes"}},
	})
	if m.Match(model.Change{ResourceType: "aws_s3_bucket", ResourceName: "b", AttributesChanged: []string{"Tags.Environment"}}) == nil {
		t.Error("expected case-insensitive match")
	}
}

func TestNoMatchReturnsNil(t *testing.T) {
	m := mustCompile(t, profile.Default().Rules)
	cls := m.Match(model.Change{
		ResourceType: "aws_lambda_function",
		ResourceName: "ingest",
		Operation:    "create",
	})
	if cls != nil {
		t.Fatalf("expected nil, got %+v", cls)
	}
}

func TestDefaultProfileScenarios(t *testing.T) {
	m := mustCompile(t, profile.Default().Rules)

	tests := []struct {
		name   string
		change model.Change
		want   model.Category
	}{
		{
			name:   "tag change is routine",
			change: model.Change{ResourceType: "aws_s3_bucket", ResourceName: "logs", Operation: "modify", AttributesChanged: []string{"tags.environment"}},
			want:   model.Routine,
		},
		{
			name:   "instance type change is adaptive",
			change: model.Change{ResourceType: "aws_instance", ResourceName: "web", Operation: "modify", AttributesChanged: []string{"instance_type"}},
			want:   model.Adaptive,
		},
		{
			name:   "database engine change is transformative",
			change: model.Change{ResourceType: "aws_rds_cluster", ResourceName: "primary", Operation: "modify", AttributesChanged: []string{"engine"}},
			want:   model.Transformative,
		},
		{
			name: "encryption removal is impact",
			change: model.Change{ResourceType: "aws_s3_bucket", ResourceName: "logs", Operation: "delete",
				AttributesChanged: []string{"server_side_encryption_configuration"}},
			want: model.Impact,
		},
		{
			name: "world-open security group is impact",
			change: model.Change{ResourceType: "aws_security_group", ResourceName: "web", Operation: "modify",
				AttributesChanged: []string{"ingress"}, DiffText: `+ cidr_blocks = ["0.0.0.0/0"]`},
			want: model.Impact,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := m.Match(tt.change)
			if cls == nil {
				t.Fatal("expected a match")
			}
			if cls.Category != tt.want {
				t.Errorf("Category = %s, want %s", cls.Category, tt.want)
			}
		})
	}
}
