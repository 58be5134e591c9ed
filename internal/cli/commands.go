package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bigkaa/gdrive-web/internal/domain/model"
	"github.com/bigkaa/gdrive-web/internal/service"
	"github.com/bigkaa/gdrive-web/internal/tokenstore"
)

// newFlags: FlagSet команды; ошибки разбора печатаются в Stderr.
func (a *App) newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func cmdLogin(ctx context.Context, a *App, e *env, args []string) error {
	fs := a.newFlags("login")
	username := fs.String("u", "", "имя пользователя")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *username == "" {
		var err error
		if *username, err = a.promptLine("Имя пользователя: "); err != nil {
			return err
		}
	}
	password, err := a.promptPassword()
	if err != nil {
		return err
	}

	if _, err := e.auth.Login(ctx, *username, password); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "Вход выполнен: %s. Токен сохранён в %s\n", *username, e.tokens.Path())
	return nil
}

func cmdRegister(ctx context.Context, a *App, e *env, args []string) error {
	fs := a.newFlags("register")
	email := fs.String("email", "", "адрес электронной почты")
	username := fs.String("u", "", "имя пользователя")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var err error
	if *email == "" {
		if *email, err = a.promptLine("Email: "); err != nil {
			return err
		}
	}
	if *username == "" {
		if *username, err = a.promptLine("Имя пользователя: "); err != nil {
			return err
		}
	}
	password, err := a.promptPassword()
	if err != nil {
		return err
	}

	if _, err := e.auth.Register(ctx, *email, *username, password); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "Аккаунт создан: %s. Токен сохранён в %s\n", *username, e.tokens.Path())
	return nil
}

// cmdLogout: при ошибке backend токен всё равно удаляется локально.
func cmdLogout(ctx context.Context, a *App, e *env, args []string) error {
	if _, ok := e.tokens.Get(); !ok {
		fmt.Fprintln(a.Stdout, "Вход не выполнен")
		return e.tokens.Remove()
	}

	if err := e.auth.Logout(ctx); err != nil {
		fmt.Fprintf(a.Stderr, "Предупреждение: %s; токен удалён локально\n", describe(err))
		if err := e.tokens.Remove(); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.Stdout, "Выход выполнен")
	return nil
}

func cmdWhoami(ctx context.Context, a *App, e *env, args []string) error {
	token, ok := e.tokens.Get()
	if !ok {
		return fmt.Errorf("вход не выполнен, выполните: gdrive-cli login")
	}

	user, err := e.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "%s <%s>\n", user.Username, user.Email)

	if claims, err := tokenstore.PeekClaims(token); err == nil && !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.Stdout, "Токен действителен до %s (%s)\n",
			claims.ExpiresAt.Local().Format(time.DateTime), humanize.Time(claims.ExpiresAt))
	}
	return nil
}

func cmdList(ctx context.Context, a *App, e *env, args []string) error {
	fs := a.newFlags("ls")
	folderID := fs.Int64("folder", 0, "ID папки (0: корень)")
	path := fs.String("path", "", "путь папки, например /documents")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 || (*folderID != 0 && *path != "") {
		return errUsage
	}

	var parent *int64
	switch {
	case *path != "":
		folder, err := e.folders.FolderByPath(ctx, *path)
		if err != nil {
			return err
		}
		parent = &folder.ID
	case *folderID != 0:
		parent = folderID
	}

	var (
		folders []model.Folder
		files   []model.File
		err     error
	)
	if parent == nil {
		if folders, err = e.folders.RootFolders(ctx); err != nil {
			return err
		}
		if files, err = e.files.RootFiles(ctx); err != nil {
			return err
		}
	} else {
		if folders, err = e.folders.FoldersByParent(ctx, *parent); err != nil {
			return err
		}
		if files, err = e.files.FilesByFolder(ctx, *parent); err != nil {
			return err
		}
	}

	if len(folders) == 0 && len(files) == 0 {
		fmt.Fprintln(a.Stdout, "Папка пуста")
		return nil
	}

	tw := tabwriter.NewWriter(a.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ТИП\tID\tИМЯ\tРАЗМЕР\tСТАТУС\tИЗМЕНЁН")
	for _, f := range folders {
		fmt.Fprintf(tw, "dir\t%d\t%s/\t-\t-\t%s\n", f.ID, f.Name, humanize.Time(f.UpdatedAt))
	}
	for _, f := range files {
		fmt.Fprintf(tw, "file\t%d\t%s\t%s\t%s\t%s\n",
			f.ID, f.Name, humanize.IBytes(uint64(max(f.Size, 0))), f.Status, humanize.Time(f.UpdatedAt))
	}
	return tw.Flush()
}

func cmdMkdir(ctx context.Context, a *App, e *env, args []string) error {
	fs := a.newFlags("mkdir")
	parentID := fs.Int64("parent", 0, "ID родительской папки (0: корень)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	var parent *int64
	if *parentID != 0 {
		parent = parentID
	}

	folder, err := e.folders.CreateFolder(ctx, fs.Arg(0), parent)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "Папка создана: %s (id %d)\n", folder.Path, folder.ID)
	return nil
}

func cmdTree(ctx context.Context, a *App, e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}

	tree, err := e.folders.Tree(ctx, nil)
	if err != nil {
		return err
	}
	if len(tree) == 0 {
		fmt.Fprintln(a.Stdout, "Папок нет")
		return nil
	}
	printTree(a.Stdout, tree, 0)
	return nil
}

func printTree(w io.Writer, nodes []model.FolderTree, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%s%s/ (%d)\n", strings.Repeat("  ", depth), n.Name, n.FilesCount)
		printTree(w, n.Children, depth+1)
	}
}

func cmdURL(ctx context.Context, a *App, e *env, args []string) error {
	fs := a.newFlags("url")
	expires := fs.Duration("expires", service.DefaultDownloadURLExpiry, "срок действия ссылки")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return errUsage
	}

	link, err := e.files.DownloadURL(ctx, id, *expires)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.Stdout, link.URL)
	return nil
}
