package constant

// AsciiArtLogo is the banner printed above the root command help.
const AsciiArtLogo = `                        ___       __
   ___  ___ ____ ____  / (_)__  / /__ ___
  / _ \/ _ '/ _ '/ -_)/ / / _ \/  '_/(_-<
 / .__/\_,_/\_, /\__//_/_/_//_/_/\_\/___/
/_/        /___/`
