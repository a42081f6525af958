package gate

import (
	_ "embed"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
)

//go:embed rules.yaml
var defaultRules []byte

const defaultLoginPath = "/login"

type Match string

const (
	MatchExact  Match = "exact"
	MatchPrefix Match = "prefix"
)

// Rule tells whether the paths it matches are public, and which roles may see them otherwise.
type Rule struct {
	Pattern string   `yaml:"pattern"`
	Match   Match    `yaml:"match"`
	Public  bool     `yaml:"public"`
	Roles   []string `yaml:"roles"`
}

func (r Rule) matches(p string) bool {
	if r.Match == MatchExact {
		return p == r.Pattern
	}
	if r.Pattern == "/" {
		return true
	}
	return p == r.Pattern || strings.HasPrefix(p, r.Pattern+"/")
}

func (r Rule) allows(role string) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

type ruleFile struct {
	LoginPath string `yaml:"loginPath"`
	Rules     []Rule `yaml:"rules"`
}

// Decision is the outcome of Authorize: either allow the navigation or redirect it to Target.
type Decision struct {
	Allowed bool
	Target  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Redirect(target string) Decision { return Decision{Target: target} }

func (d Decision) String() string {
	if d.Allowed {
		return "allow"
	}
	return "redirect(" + d.Target + ")"
}

// Gate decides whether a navigation may proceed given the current session.
// It is immutable once built and safe for concurrent use.
type Gate struct {
	loginPath string
	rules     []Rule // most specific first
	now       func() time.Time
}

type Option func(*Gate)

// WithLoginPath overrides the login path of the rule file.
func WithLoginPath(p string) Option {
	return func(g *Gate) {
		if p != "" {
			g.loginPath = p
		}
	}
}

// WithClock sets the clock used to check token expiry.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// New returns a Gate using the built-in rule table.
func New(opts ...Option) (*Gate, error) {
	return Load(defaultRules, opts...)
}

// NewFromConfig returns a Gate using conf.Gate.RulesFile when set, the built-in rule table otherwise.
func NewFromConfig(conf *core.Config, opts ...Option) (*Gate, error) {
	data := defaultRules
	if conf.Gate.RulesFile != "" {
		var err error
		if data, err = os.ReadFile(conf.Gate.RulesFile); err != nil {
			return nil, errors.Wrap(err, "reading gate rules")
		}
	}
	return Load(data, append([]Option{WithLoginPath(conf.Gate.LoginPath)}, opts...)...)
}

// Load builds a Gate from a YAML rule table.
func Load(data []byte, opts ...Option) (*Gate, error) {
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, errors.Wrap(err, "parsing gate rules")
	}

	g := &Gate{loginPath: rf.LoginPath, now: time.Now}
	if g.loginPath == "" {
		g.loginPath = defaultLoginPath
	}
	for _, opt := range opts {
		opt(g)
	}

	g.rules = make([]Rule, 0, len(rf.Rules))
	for i, r := range rf.Rules {
		if !strings.HasPrefix(r.Pattern, "/") {
			return nil, errors.Errorf("gate rule %d: pattern %q must start with /", i, r.Pattern)
		}
		r.Pattern = cleanPath(r.Pattern)
		switch r.Match {
		case "":
			r.Match = MatchPrefix
		case MatchExact, MatchPrefix:
		default:
			return nil, errors.Errorf("gate rule %d: unknown match %q", i, r.Match)
		}
		for _, role := range r.Roles {
			if !user.IsRole(role) {
				return nil, errors.Errorf("gate rule %d: unknown role %q", i, role)
			}
		}
		g.rules = append(g.rules, r)
	}

	// longest pattern first; exact before prefix on a tie
	sort.SliceStable(g.rules, func(i, j int) bool {
		ri, rj := g.rules[i], g.rules[j]
		if len(ri.Pattern) != len(rj.Pattern) {
			return len(ri.Pattern) > len(rj.Pattern)
		}
		return ri.Match == MatchExact && rj.Match != MatchExact
	})
	return g, nil
}

// MustNew is like New but panics on error. The built-in rule table always loads.
func MustNew(opts ...Option) *Gate {
	g, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Gate) LoginPath() string { return g.loginPath }

// Authorize decides whether sess may navigate to pathname. It never performs I/O.
func (g *Gate) Authorize(pathname string, sess core.Session) Decision {
	p := cleanPath(pathname)
	if p == g.loginPath {
		return Allow()
	}

	rule, matched := g.match(p)
	if matched && rule.Public {
		return Allow()
	}
	if !TokenValid(sess.Token, g.now()) {
		return Redirect(g.loginPath)
	}
	if matched && !rule.allows(sess.Role) {
		home := user.HomePath(sess.Role)
		if home == p {
			return Redirect(g.loginPath)
		}
		return Redirect(home)
	}
	return Allow()
}

func (g *Gate) match(p string) (Rule, bool) {
	for _, r := range g.rules {
		if r.matches(p) {
			return r, true
		}
	}
	return Rule{}, false
}

// TokenValid reports whether token may be used: non-empty and, when it is a JWT, not expired.
// Signatures are not checked here, the remote API remains the authority.
func TokenValid(token string, now time.Time) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	if strings.Count(token, ".") != 2 {
		return true // opaque token
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	return exp == nil || now.Before(exp.Time)
}

func cleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}
