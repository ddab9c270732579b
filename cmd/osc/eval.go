package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brabagaza/OpenSesame/pkg/cond"
	"github.com/brabagaza/OpenSesame/pkg/script"
	"github.com/brabagaza/OpenSesame/pkg/vars"
)

var (
	evalText string
	evalCond string
	evalItem string
)

var evalCmd = &cobra.Command{
	Use:   "eval <file>",
	Short: "Evaluate substitution text or a condition against a script",
	Long: `Loads the script's variables and evaluates either a substitution text
(-t "[width]x[height]") or a conditional statement (-c "[correct] = 1").
By default names resolve in the experiment scope; --item selects an item
scope instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEval(args[0])
	},
}

func init() {
	evalCmd.Flags().StringVarP(&evalText, "text", "t", "", "Substitution text to evaluate")
	evalCmd.Flags().StringVarP(&evalCond, "cond", "c", "", "Conditional statement to evaluate")
	evalCmd.Flags().StringVar(&evalItem, "item", "", "Resolve names in this item's scope")
	rootCmd.AddCommand(evalCmd)
}

func runEval(path string) error {
	if (evalText == "") == (evalCond == "") {
		return fmt.Errorf("exactly one of --text or --cond is required")
	}
	text, err := readScript(path)
	if err != nil {
		return err
	}
	f, err := script.ParseFile(text, nil)
	if err != nil {
		return err
	}
	store := f.Experiment.Vars
	if evalItem != "" {
		d := f.Lookup(evalItem)
		if d == nil {
			return fmt.Errorf("no item named %q in %s", evalItem, path)
		}
		store = d.Vars
	}

	if evalText != "" {
		val, err := store.EvalText(evalText, nil)
		if err != nil {
			return err
		}
		fmt.Println(vars.ToString(val))
		return nil
	}

	c, err := cond.Compile(evalCond)
	if err != nil {
		return err
	}
	ok, err := c.Eval(store)
	if err != nil {
		return err
	}
	fmt.Println(ok)
	return nil
}
