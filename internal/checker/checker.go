// Package checker implements the iterative proof walker (spec.md
// §4.4): a work stack of (cursor, command-slice) frames drives
// traversal over arbitrarily deeply nested subproofs without ever
// recursing natively over proof depth.
package checker

import (
	"fmt"
	"time"

	"github.com/tliron/commonlog"

	"github.com/alethecheck/alethecheck/internal/pool"
	"github.com/alethecheck/alethecheck/internal/proof"
	"github.com/alethecheck/alethecheck/internal/rules"
	"github.com/alethecheck/alethecheck/internal/stats"
	"github.com/alethecheck/alethecheck/internal/subst"
)

var log = commonlog.GetLogger("alethecheck.checker")

// Error wraps a failed rule's Error with the step and rule name the
// walker was checking when it aborted (spec.md §7).
type Error struct {
	Inner    *rules.Error
	RuleName string
	Step     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (on step '%s', with rule '%s')", e.Inner, e.Step, e.RuleName)
}

// Config enumerates the checker's run-time options (spec.md §6).
type Config struct {
	SkipUnknownRules bool
	IsRunningTest    bool
	FileName         string
	Statistics       *stats.Sink
}

// Checker holds the pool exclusively for the duration of one check
// run (spec.md §5) and drives the work stack / context stack pair.
type Checker struct {
	pool    *pool.Pool
	engine  *subst.Engine
	config  Config
	context []subst.Context
}

func New(p *pool.Pool, config Config) *Checker {
	return &Checker{pool: p, engine: subst.NewEngine(p), config: config}
}

type frame struct {
	cursor   int
	commands []proof.Command
}

// Check walks pf's command tree, dispatching each step to its rule
// and returning the first failure encountered (spec.md §4.4). There
// is no per-step retry or recovery.
func (c *Checker) Check(pf *proof.Proof) error {
	stack := []frame{{cursor: 0, commands: pf.Commands}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.cursor == len(top.commands) {
			if len(stack) != 1 {
				panic("work stack reached the end of a subproof's command slice without its closing step")
			}
			break
		}

		cmd := top.commands[top.cursor]
		isEndOfSubproof := len(stack) > 1 && top.cursor == len(top.commands)-1

		switch cmd.Kind {
		case proof.KindAssume:
			if err := c.checkAssume(pf, cmd, len(stack) > 1); err != nil {
				return err
			}

		case proof.KindStep:
			if err := c.checkStep(cmd, stack, isEndOfSubproof); err != nil {
				return err
			}
			if isEndOfSubproof {
				stack = stack[:len(stack)-1]
				c.context = c.context[:len(c.context)-1]
			}

		case proof.KindSubproof:
			start := time.Now()
			var parent *subst.Context
			if len(c.context) > 0 {
				parent = &c.context[len(c.context)-1]
			}
			assignArgs := make([]subst.AssignmentArg, len(cmd.AssignmentArgs))
			for i, a := range cmd.AssignmentArgs {
				assignArgs[i] = subst.AssignmentArg{Var: a.Name, Value: a.Value}
			}
			newCtx := subst.BuildContext(c.pool, c.engine, assignArgs, cmd.VariableArgs, parent)
			c.context = append(c.context, newCtx)
			stack = append(stack, frame{cursor: 0, commands: cmd.Commands})

			c.recordStats(lastStepIndex(cmd.Commands), stats.AnchorRuleLabel, start)
			continue
		}

		stack[len(stack)-1].cursor++
	}

	return nil
}

func lastStepIndex(commands []proof.Command) string {
	if len(commands) == 0 {
		return ""
	}
	last := commands[len(commands)-1]
	if last.Kind == proof.KindStep {
		return last.Index
	}
	return ""
}

func (c *Checker) checkAssume(pf *proof.Proof, cmd proof.Command, insideSubproof bool) error {
	start := time.Now()
	defer c.recordStats(cmd.Index, stats.AssumeRuleLabel, start)

	if c.config.IsRunningTest || insideSubproof {
		return nil
	}

	for _, premise := range pf.Premises {
		if premise == cmd.AssumeTerm || c.pool.EqualModuloReordering(cmd.AssumeTerm, premise) {
			return nil
		}
	}

	log.Errorf("assume '%s' matches no premise", cmd.Index)
	return &Error{Inner: &rules.Error{Kind: rules.Unspecified}, RuleName: "assume", Step: cmd.Index}
}

func (c *Checker) checkStep(cmd proof.Command, stack []frame, isEndOfSubproof bool) error {
	start := time.Now()

	rule, ok := rules.Lookup(cmd.Rule)
	if !ok {
		if c.config.SkipUnknownRules {
			return nil
		}
		return &Error{Inner: &rules.Error{Kind: rules.UnknownRule}, RuleName: cmd.Rule, Step: cmd.Index}
	}

	resolvedPremises := make([]proof.Command, len(cmd.Premises))
	for i, ref := range cmd.Premises {
		resolvedPremises[i] = stack[ref.Depth].commands[ref.Position]
	}

	var subproofCommands []proof.Command
	if isEndOfSubproof {
		subproofCommands = stack[len(stack)-1].commands
	}

	var ctx *subst.Context
	if len(c.context) > 0 {
		ctx = &c.context[len(c.context)-1]
	}

	args := rules.Args{
		Conclusion:       cmd.Clause,
		Premises:         resolvedPremises,
		RuleArgs:         cmd.Args,
		Pool:             c.pool,
		Context:          ctx,
		SubproofCommands: subproofCommands,
	}

	if err := rule(args); err != nil {
		log.Errorf("step '%s' failed rule '%s': %s", cmd.Index, cmd.Rule, err)
		c.recordStats(cmd.Index, cmd.Rule, start)
		return &Error{Inner: err, RuleName: cmd.Rule, Step: cmd.Index}
	}

	c.recordStats(cmd.Index, cmd.Rule, start)
	return nil
}

func (c *Checker) recordStats(index, rule string, start time.Time) {
	if c.config.Statistics == nil {
		return
	}
	c.config.Statistics.Record(stats.StepID{
		File:  c.config.FileName,
		Index: index,
		Rule:  rule,
	}, time.Since(start))
}
