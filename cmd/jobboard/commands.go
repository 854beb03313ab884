package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"

	"greenjobs/internal/api"
	"greenjobs/internal/jobquery"
	"greenjobs/internal/model"
	"greenjobs/internal/session"
)

type app struct {
	mgr    *session.Manager
	client *api.Client
	out    io.Writer
	errOut io.Writer
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "google":
		return a.google(ctx, args)
	case "logout":
		a.mgr.Logout(ctx)
		return a.printSession()
	case "whoami":
		return a.printSession()
	case "refresh":
		if err := a.mgr.RefreshUser(ctx); err != nil {
			return err
		}
		return a.printSession()
	case "profile":
		return a.profile(ctx, args)
	case "jobs":
		return a.jobs(ctx, args)
	case "featured":
		return a.result(a.client.FeaturedJobs(ctx))
	case "job":
		id, err := oneArg(cmd, args)
		if err != nil {
			return err
		}
		return a.result(a.client.GetJob(ctx, id))
	case "apply":
		return a.apply(ctx, args)
	case "company":
		id, err := oneArg(cmd, args)
		if err != nil {
			return err
		}
		return a.result(a.client.GetCompany(ctx, id))
	case "verify":
		id, err := oneArg(cmd, args)
		if err != nil {
			return err
		}
		return a.result(a.client.VerifyCompany(ctx, id))
	case "employer-jobs":
		return a.result(a.client.EmployerJobs(ctx))
	case "stats":
		return a.result(a.client.AdminStats(ctx))
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.result(a.mgr.Login(ctx, model.LoginData{Email: *email, Password: *password}))
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", string(model.RoleEmployee), "employee or employer")
	companyID := fs.String("company-id", "", "existing company to join")
	companyName := fs.String("company-name", "", "name of a new company")
	companyDesc := fs.String("company-description", "", "description of the new company")
	companyWebsite := fs.String("company-website", "", "website of the new company")
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := model.ParseRole(*role)
	if err != nil {
		return err
	}
	data := model.RegisterData{
		Name:      *name,
		Email:     *email,
		Password:  *password,
		Role:      r,
		CompanyID: *companyID,
	}
	if *companyName != "" {
		data.Company = &model.CompanyCreate{
			Name:        *companyName,
			Description: *companyDesc,
			Website:     *companyWebsite,
		}
	}
	return a.result(a.mgr.Register(ctx, data))
}

func (a *app) google(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("google", flag.ContinueOnError)
	role := fs.String("role", string(model.RoleEmployee), "employee or employer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.result(a.mgr.LoginWithGoogle(ctx, model.Role(*role)))
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	var upd model.ProfileUpdate
	fs.Func("summary", "profile summary", func(v string) error {
		upd.Summary = &v
		return nil
	})
	fs.Func("skills", "comma separated skills", func(v string) error {
		skills := model.NormalizeSkills(strings.Split(v, ","))
		upd.Skills = &skills
		return nil
	})
	fs.Func("resume", "resume file path", func(v string) error {
		u := model.ResumeURLFromPath(v)
		upd.ResumeURL = &u
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.result(a.mgr.UpdateProfile(ctx, upd))
}

func (a *app) jobs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	title := fs.String("title", "", "title contains")
	location := fs.String("location", "", "location contains")
	sector := fs.String("sector", "", "exact sector")
	workType := fs.String("type", "", "exact work type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := jobquery.FromQuery(url.Values{
		jobquery.ParamTitle:    {*title},
		jobquery.ParamLocation: {*location},
		jobquery.ParamSector:   {*sector},
		jobquery.ParamWorkType: {*workType},
	})
	if err != nil {
		return err
	}
	return a.result(a.client.ListJobs(ctx, f))
}

// apply prints where the application continues: the external address for
// third-party listings, or the in-app job otherwise.
func (a *app) apply(ctx context.Context, args []string) error {
	id, err := oneArg("apply", args)
	if err != nil {
		return err
	}
	job, err := a.client.GetJob(ctx, id)
	if err != nil {
		return err
	}
	redirect, err := a.client.StartApplication(ctx, *job)
	if redirect == "" && err != nil {
		return err
	}
	if err != nil {
		// the click was not counted but the listing is still reachable
		fmt.Fprintln(a.errOut, "warning:", err)
	}
	if redirect != "" {
		return a.print(map[string]string{"redirectUrl": redirect})
	}
	return a.print(job)
}

// printSession prints the session without its token.
func (a *app) printSession() error {
	snap := a.mgr.State().Snapshot()
	return a.print(struct {
		Phase string      `json:"phase"`
		User  *model.User `json:"user"`
	}{Phase: snap.Phase.String(), User: snap.User})
}

func (a *app) result(v any, err error) error {
	if err != nil {
		return err
	}
	return a.print(v)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func oneArg(cmd string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", errors.New(cmd + ": expected exactly one ID argument")
	}
	return args[0], nil
}
