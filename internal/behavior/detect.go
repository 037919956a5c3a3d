package behavior

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/brandpulse/audience-cli/internal/model"
)

// Rule triggers a characteristic from audience text. Keywords use OR
// semantics over the combined haystack; NameKeywords match against the
// segment name only; RequireAll demands every listed keyword in the
// haystack. A rule fires when any configured condition holds.
type Rule struct {
	Characteristic Characteristic `yaml:"characteristic"`
	Keywords       []string       `yaml:"keywords,omitempty"`
	NameKeywords   []string       `yaml:"name_keywords,omitempty"`
	RequireAll     []string       `yaml:"require_all,omitempty"`
}

// defaultRules is the compiled-in rule set. The asymmetries are deliberate:
// cultural_enthusiast triggers on the name field only, and young_professional
// needs both of its keywords present.
var defaultRules = []Rule{
	{Characteristic: TechForward, Keywords: []string{"tech", "digital", "innovation", "technology"}},
	{Characteristic: EarlyAdopter, Keywords: []string{"early adopter", "innovator", "trendsetter"}},
	{Characteristic: LuxuryLifestyle, Keywords: []string{"luxury", "premium", "high-end", "upscale"}},
	{Characteristic: Affluent, Keywords: []string{"affluent", "high income", "wealthy"}},
	{Characteristic: BudgetConscious, Keywords: []string{"budget", "value", "affordable", "cost-conscious"}},
	{Characteristic: ValueSeeking, Keywords: []string{"value"}},
	{Characteristic: Urban, Keywords: []string{"urban", "city", "metro", "downtown"}},
	{Characteristic: Suburban, Keywords: []string{"suburban", "suburb"}},
	{Characteristic: CulturalDiversity, Keywords: []string{"cultural", "diverse", "diversity", "multicultural"}},
	{Characteristic: Multicultural, Keywords: []string{"multicultural"}},
	{Characteristic: CulturalEnthusiast, NameKeywords: []string{"enthusiast"}},
	{Characteristic: HealthConscious, Keywords: []string{"health", "wellness", "fitness"}},
	{Characteristic: WellnessFocused, Keywords: []string{"wellness"}},
	{Characteristic: ExperienceSeeker, Keywords: []string{"experience", "explorer", "adventur"}},
	{Characteristic: Adventurous, Keywords: []string{"adventure", "explorer", "nomad"}},
	{Characteristic: Sustainability, Keywords: []string{"sustainab", "environment", "eco", "green"}},
	{Characteristic: EnvironmentallyConscious, Keywords: []string{"environment"}},
	{Characteristic: GenZMillennial, Keywords: []string{"gen z", "millennial", "young"}},
	{Characteristic: YoungProfessional, RequireAll: []string{"professional", "young"}},
}

// Detector matches audience profiles against a rule set. The zero-config
// detector uses the compiled-in rules.
type Detector struct {
	rules []Rule
}

// NewDetector returns a detector with the default rule set.
func NewDetector() *Detector {
	return &Detector{rules: defaultRules}
}

// LoadDetector reads a YAML rules file and overlays it on the defaults:
// a rule for a known characteristic replaces the default rule, a rule for a
// new characteristic is appended.
func LoadDetector(path string) (*Detector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "behavior: read rules %s", path)
	}

	var wrapper struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "behavior: parse rules")
	}

	byChar := make(map[Characteristic]Rule, len(wrapper.Rules))
	for _, r := range wrapper.Rules {
		byChar[r.Characteristic] = r
	}

	rules := make([]Rule, 0, len(defaultRules)+len(wrapper.Rules))
	for _, r := range defaultRules {
		if override, ok := byChar[r.Characteristic]; ok {
			rules = append(rules, override)
			delete(byChar, r.Characteristic)
			continue
		}
		rules = append(rules, r)
	}
	for _, r := range wrapper.Rules {
		if _, pending := byChar[r.Characteristic]; pending {
			rules = append(rules, r)
		}
	}

	return &Detector{rules: rules}, nil
}

// Detect returns the set of characteristics matched by the profile's free
// text. Matching is case-insensitive substring containment; multiple
// characteristics may co-trigger on overlapping keywords. Empty text yields
// an empty set.
func (d *Detector) Detect(profile model.AudienceProfile) []Characteristic {
	name := strings.ToLower(profile.Name)
	haystack := strings.ToLower(strings.Join([]string{
		profile.Name,
		profile.Targeting.Location,
		profile.Targeting.Income,
	}, " "))

	var detected []Characteristic
	for _, rule := range d.rules {
		if rule.matches(name, haystack) {
			detected = append(detected, rule.Characteristic)
		}
	}

	zap.L().Debug("detected audience characteristics",
		zap.String("audience", profile.Name),
		zap.Int("count", len(detected)))
	return detected
}

func (r Rule) matches(name, haystack string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	for _, kw := range r.NameKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	if len(r.RequireAll) > 0 {
		all := true
		for _, kw := range r.RequireAll {
			if !strings.Contains(haystack, kw) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
