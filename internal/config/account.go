package config

import (
	"fmt"
	"os"
	"os/user"
	"strconv"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/tessellate-ai/boardstrap/internal/messages"
)

// Account identifies the non-root user the workspace is provisioned for.
// Under sudo this is the invoking user, not root.
type Account struct {
	Name string
	Home string
	UID  int
	GID  int
}

var lookupUser = user.Lookup

// ResolveUser determines the workspace owner. When SUDO_USER is set the named
// account is looked up; otherwise the current user is used with go-homedir as
// the home-directory fallback (covers static binaries without cgo user lookups).
func ResolveUser() (Account, error) {
	if name := os.Getenv("SUDO_USER"); name != "" && name != "root" {
		return lookupAccount(name)
	}
	current, err := user.Current()
	if err == nil {
		return accountFromUser(current)
	}
	home, homeErr := homedir.Dir()
	if homeErr != nil {
		return Account{}, fmt.Errorf(messages.ConfigResolveHomeFailedFmt, os.Getenv("USER"), homeErr)
	}
	return Account{Name: os.Getenv("USER"), Home: home, UID: os.Getuid(), GID: os.Getgid()}, nil
}

func lookupAccount(name string) (Account, error) {
	u, err := lookupUser(name)
	if err != nil {
		return Account{}, fmt.Errorf(messages.ConfigResolveHomeFailedFmt, name, err)
	}
	return accountFromUser(u)
}

func accountFromUser(u *user.User) (Account, error) {
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Account{}, fmt.Errorf(messages.ConfigResolveHomeFailedFmt, u.Username, err)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return Account{}, fmt.Errorf(messages.ConfigResolveHomeFailedFmt, u.Username, err)
	}
	return Account{Name: u.Username, Home: u.HomeDir, UID: uid, GID: gid}, nil
}
